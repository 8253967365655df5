package repository_test

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloksy/cloksy-backend/internal/timesheet/domain"
	"github.com/cloksy/cloksy-backend/internal/timesheet/repository"
	"github.com/cloksy/cloksy-backend/pkg/testutil"
)

func sqlmockResult() driver.Result {
	return sqlmock.NewResult(0, 1)
}

func TestHolidayRepository_InsertBatch(t *testing.T) {
	ctx := context.Background()
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	holidays := []domain.Holiday{
		{Title: "Offsite", Date: domain.MustParseDate("2024-05-01"), Type: domain.HolidayTypeEvent},
		{Title: "Offsite", Date: domain.MustParseDate("2024-05-02"), Type: domain.HolidayTypeEvent},
	}

	mockDB.ExpectBegin()
	for _, h := range holidays {
		mockDB.ExpectExec("INSERT INTO holidays (id, title, date, type) VALUES ($1, $2, $3, $4)").
			WithArgs(testutil.AnyUUID{}, "Offsite", h.Date.String(), "event").
			WillReturnResult(sqlmockResult())
	}
	mockDB.ExpectCommit()

	repo := repository.NewHolidayRepository(mockDB.Database())
	require.NoError(t, repo.InsertBatch(ctx, holidays))
	mockDB.ExpectationsWereMet(t)
}

func TestHolidayRepository_ListBetween(t *testing.T) {
	ctx := context.Background()
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	may1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	mockDB.ExpectQuery("WHERE date >= $1 AND date < $2 ORDER BY date, title").
		WithArgs("2024-05-01", "2024-06-01").
		WillReturnRows(testutil.MockRows("id", "title", "date", "type", "created_at").
			AddRow("h1", "Labour Day", may1, "holiday", may1))

	repo := repository.NewHolidayRepository(mockDB.Database())
	holidays, err := repo.ListBetween(ctx, domain.MustParseDate("2024-05-01"), domain.MustParseDate("2024-06-01"))
	require.NoError(t, err)

	require.Len(t, holidays, 1)
	assert.Equal(t, "Labour Day", holidays[0].Title)
	assert.Equal(t, domain.HolidayTypeHoliday, holidays[0].Type)
	assert.Equal(t, domain.MustParseDate("2024-05-01"), holidays[0].Date)
	mockDB.ExpectationsWereMet(t)
}
