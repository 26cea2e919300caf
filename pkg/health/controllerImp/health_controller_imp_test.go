package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"prodplan/database"
	"prodplan/database/dbtest"
)

func serve(t *testing.T, h *HealthCtrl) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	e.GET("/health", h.Health)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealthOK(t *testing.T) {
	rec, body := serve(t, NewHealthCtrl(dbtest.New(t)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, body["status"].(map[string]any)["ok"])
}

func TestHealthReportsClosedDB(t *testing.T) {
	db := dbtest.New(t)
	require.NoError(t, database.Close(db))
	rec, body := serve(t, NewHealthCtrl(db))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	checks := body["checks"].(map[string]any)
	require.Equal(t, false, checks["database"].(map[string]any)["ok"])
}

func TestHealthNilDB(t *testing.T) {
	rec, _ := serve(t, NewHealthCtrl(nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
