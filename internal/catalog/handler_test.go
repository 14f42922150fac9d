package catalog

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func catalogRouter(t *testing.T) *chi.Mux {
	t.Helper()
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), testCatalog(t))
	router := chi.NewRouter()
	h.MountRoutes(router)
	return router
}

func TestRecommendEndpoint(t *testing.T) {
	router := catalogRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/recommendations?distance=20&unit=feet&environment=Indoor", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp recommendationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.InDelta(t, 1.8, resp.PixelPitch, 1e-9)
	require.NotNil(t, resp.Band)
	require.Len(t, resp.Products, 1)
	require.Equal(t, "IND-18", resp.Products[0].ID)
}

func TestRecommendRejectsBadDistance(t *testing.T) {
	router := catalogRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/recommendations?distance=far", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendRejectsBadUnit(t *testing.T) {
	router := catalogRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/recommendations?distance=20&unit=furlongs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendNoCandidates(t *testing.T) {
	router := catalogRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/recommendations?distance=0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBrowseSurfacesRentalFamilies(t *testing.T) {
	router := catalogRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/products?environment=Indoor&sub_type=Rental", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Items []productResponse `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Items, 1)
	require.Equal(t, "IND-RNT-39", payload.Items[0].ID)
}
