package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/erestaurant/internal/config"
	"github.com/deppfellow/erestaurant/internal/errs"
	"github.com/deppfellow/erestaurant/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(buf *bytes.Buffer) *server.Server {
	logger := zerolog.New(buf)
	return &server.Server{
		Config: &config.Config{Primary: config.Primary{Env: "local"}},
		Logger: &logger,
	}
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")
		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc", rec.Body.String())
	})
}

func TestEnhanceContext(t *testing.T) {
	var buf bytes.Buffer
	ce := NewContextEnhancer(newTestServer(&buf))

	e := echo.New()
	e.Use(RequestID(), ce.EnhanceContext())
	e.GET("/", func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo context")
		zerolog.Ctx(c.Request().Context()).Info().Msg("from request context")
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	e.ServeHTTP(httptest.NewRecorder(), req)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, string(line), `"request_id":"req-1"`)
	}
}

func TestGetLoggerWithoutEnhancer(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, zerolog.Disabled, GetLogger(c).GetLevel())
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"httpError", errs.NewBadRequestError("bad date", true, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"connectivity", errs.NewStoreError(errs.KindConnectivity, "database.Acquire", context.DeadlineExceeded), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"validation", errs.NewStoreError(errs.KindValidation, "seating.SeatingByDateTime", assert.AnError), http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"echoNotFound", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"echoMethod", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			global := NewGlobalMiddlewares(newTestServer(&buf))

			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)

			var body errs.HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestGlobalErrorHandlerKeepsSchemaInLogs(t *testing.T) {
	var buf bytes.Buffer
	global := NewGlobalMiddlewares(newTestServer(&buf))

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	requestLogger := zerolog.New(&buf)
	c.Set(LoggerKey, &requestLogger)

	global.GlobalErrorHandler(&pgconn.PgError{Code: "42703", ColumnName: "menu_category_id"}, c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Menu Category")

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), body.Message)

	assert.Contains(t, buf.String(), `"store_detail":"The Menu Category query references an unknown column"`)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusOf(echo.ErrNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(errs.NewStoreError(errs.KindConnectivity, "", assert.AnError)))
	assert.Equal(t, http.StatusInternalServerError, statusOf(assert.AnError))
}
