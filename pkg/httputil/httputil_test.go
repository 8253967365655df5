package httputil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloksy/cloksy-backend/pkg/errors"
	"github.com/cloksy/cloksy-backend/pkg/logger"
	"github.com/cloksy/cloksy-backend/pkg/permissions"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.Conflict("pto request already decided"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decode(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestError_PlainErrorIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", decode(t, rec).Error.Code)
}

func TestAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	Attachment(rec, "text/csv", "project_summary.csv", []byte("project,hours\n"))

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="project_summary.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "project,hours\n", rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Title string `json:"title"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Diwali"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "Diwali", dst.Title)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestValidate(t *testing.T) {
	type req struct {
		Email string  `json:"email" validate:"required,email"`
		Hours float64 `json:"hours" validate:"gte=0"`
	}

	assert.NoError(t, Validate(req{Email: "alice@axial.energy", Hours: 1}))

	err := Validate(req{Email: "nope", Hours: -1})
	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Contains(t, appErr.Details, "Email")
	assert.Contains(t, appErr.Details, "Hours")
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "abc", seen)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	h := RequestID(Logger(logger.NewWithWriter("test", &buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pto", nil)
	req.Header.Set("X-Request-ID", "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "/api/v1/pto", entry["path"])
	assert.Equal(t, float64(http.StatusCreated), entry["status"])
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequirePermission(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := RequirePermission(permissions.PTOReview)(ok)

	tests := []struct {
		name   string
		email  string
		perms  []string
		status int
	}{
		{"anonymous", "", nil, http.StatusUnauthorized},
		{"employee", "bob@axial.energy", []string{permissions.PTORequest}, http.StatusForbidden},
		{"team lead", "carol-tl@axial.energy", []string{permissions.PTOAll}, http.StatusOK},
		{"admin", "admin@axial.energy", []string{permissions.All}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/pto/1/approve", nil)
			if tt.email != "" {
				req = req.WithContext(WithUserContext(req.Context(), tt.email, "", tt.perms))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
