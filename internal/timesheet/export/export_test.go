package export

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cloksy/cloksy-backend/internal/timesheet/report"
)

var totals = []report.ProjectTotal{
	{Project: "Grid Upgrade", Hours: 3.5},
	{Project: "Paid Time Off", Hours: 8},
	{Project: "Solar, Phase 2", Hours: 0.25},
}

func TestProjectTotalsCSV(t *testing.T) {
	data, err := ProjectTotalsCSV(totals)
	require.NoError(t, err)

	want := "project,hours\n" +
		"Grid Upgrade,3.5\n" +
		"Paid Time Off,8\n" +
		"\"Solar, Phase 2\",0.25\n"
	assert.Equal(t, want, string(data))
}

func TestProjectTotalsCSV_Deterministic(t *testing.T) {
	a, err := ProjectTotalsCSV(totals)
	require.NoError(t, err)
	b, err := ProjectTotalsCSV(totals)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))
}

func TestProjectTotalsCSV_RoundTrip(t *testing.T) {
	data, err := ProjectTotalsCSV(totals)
	require.NoError(t, err)

	back, err := ParseProjectTotalsCSV(data)
	require.NoError(t, err)
	if diff := cmp.Diff(totals, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectTotalsCSV_EmptyHasHeader(t *testing.T) {
	data, err := ProjectTotalsCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "project,hours\n", string(data))

	back, err := ParseProjectTotalsCSV(data)
	require.NoError(t, err)
	assert.Empty(t, back)
}

func TestParseProjectTotalsCSV_Errors(t *testing.T) {
	_, err := ParseProjectTotalsCSV([]byte("name,total\nA,1\n"))
	assert.Error(t, err)

	_, err = ParseProjectTotalsCSV([]byte("project,hours\nA,lots\n"))
	assert.Error(t, err)

	_, err = ParseProjectTotalsCSV(nil)
	assert.Error(t, err)
}

func TestDepartmentBreakdownCSV(t *testing.T) {
	rows := []report.DepartmentDayTotal{
		{Department: "Engineering", Day: "Monday", Project: "Grid Upgrade", Hours: 5},
		{Department: "Engineering", Day: "Tuesday", Project: "Grid Upgrade", Hours: 1.5},
	}
	data, err := DepartmentBreakdownCSV(rows)
	require.NoError(t, err)
	assert.Equal(t,
		"department,day,project,hours\nEngineering,Monday,Grid Upgrade,5\nEngineering,Tuesday,Grid Upgrade,1.5\n",
		string(data))
}

func TestProjectTotalsXLSX(t *testing.T) {
	data, err := ProjectTotalsXLSX(totals)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, len(totals)+1)
	assert.Equal(t, []string{"project", "hours"}, rows[0])
	assert.Equal(t, []string{"Grid Upgrade", "3.5"}, rows[1])
	assert.Equal(t, []string{"Paid Time Off", "8"}, rows[2])
}

func TestDepartmentBreakdownXLSX(t *testing.T) {
	data, err := DepartmentBreakdownXLSX([]report.DepartmentDayTotal{
		{Department: "Ops", Day: "Friday", Project: "Company Event", Hours: 4},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{BreakdownSheet}, f.GetSheetList())
	rows, err := f.GetRows(BreakdownSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"department", "day", "project", "hours"}, rows[0])
	assert.Equal(t, []string{"Ops", "Friday", "Company Event", "4"}, rows[1])
}
