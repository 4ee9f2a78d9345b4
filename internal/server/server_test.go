package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basket-kpis-go/internal/dataset"
	"basket-kpis-go/internal/types"
)

func sampleTable() *dataset.Table {
	return &dataset.Table{
		Categories: []string{"fresh_fruits", "yogurt", "packaged_cheese"},
		Orders: []dataset.Order{
			{ID: "1", DayOfWeek: 0, HourOfDay: 10, Items: []float64{2, 1, 1}},
			{ID: "2", DayOfWeek: 1, HourOfDay: 14, Items: []float64{0, 3, 1}},
			{ID: "3", DayOfWeek: 2, HourOfDay: 10, Items: []float64{5, 0, 0}},
		},
	}
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	rec := get(t, New(sampleTable()), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body types.HealthResponse
	decode(t, rec, &body)
	assert.Equal(t, "ok", body.Status)
}

func TestKPIs(t *testing.T) {
	rec := get(t, New(sampleTable()), "/kpis")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body types.BasketKPIs
	decode(t, rec, &body)
	assert.Equal(t, 3, body.TotalOrders)
	assert.Equal(t, 13, body.TotalItems)
	assert.Equal(t, 4.33, body.AvgItemsPerOrder)
	assert.Equal(t, 4.0, body.MedianItemsPerOrder)
}

func TestTopCategoriesDefaultLimit(t *testing.T) {
	rec := get(t, New(sampleTable()), "/categories/top")
	require.Equal(t, http.StatusOK, rec.Code)

	var body types.TopCategories
	decode(t, rec, &body)
	assert.Equal(t, 10, body.Limit)
	require.Len(t, body.TopCategories, 3)
	assert.Equal(t, "fresh_fruits", body.TopCategories[0].Category)
	assert.Equal(t, 7, body.TopCategories[0].TotalItems)
}

func TestTopCategoriesExplicitLimit(t *testing.T) {
	rec := get(t, New(sampleTable()), "/categories/top?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body types.TopCategories
	decode(t, rec, &body)
	assert.Equal(t, 1, body.Limit)
	require.Len(t, body.TopCategories, 1)
	assert.Equal(t, "fresh_fruits", body.TopCategories[0].Category)
}

func TestTopCategoriesLimitAboveCategoryCount(t *testing.T) {
	rec := get(t, New(sampleTable()), "/categories/top?limit=100")
	require.Equal(t, http.StatusOK, rec.Code)

	var body types.TopCategories
	decode(t, rec, &body)
	assert.Equal(t, 100, body.Limit)
	assert.Len(t, body.TopCategories, 3)
}

func TestTopCategoriesRejectsBadLimit(t *testing.T) {
	for _, limit := range []string{"0", "101", "abc", "-5", "1.5"} {
		rec := get(t, New(sampleTable()), "/categories/top?limit="+limit)
		require.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)

		var body types.ErrorResponse
		decode(t, rec, &body)
		assert.Equal(t, "error", body.Status)
		assert.Contains(t, body.Message, "limit must be between 1 and 100")
	}
}

func TestOrderDistribution(t *testing.T) {
	rec := get(t, New(sampleTable()), "/orders/distribution")
	require.Equal(t, http.StatusOK, rec.Code)

	var body types.OrderDistribution
	decode(t, rec, &body)
	assert.Equal(t, 3, body.Summary.TotalOrders)
	assert.Equal(t, "All available data", body.Summary.AnalysisPeriod)

	require.Len(t, body.DayOfWeekDistribution, 3)
	assert.Equal(t, "Sunday", body.DayOfWeekDistribution[0].Day)
	assert.Equal(t, 33.3, body.DayOfWeekDistribution[0].Percentage)

	require.Len(t, body.PeakHours, 2)
	assert.Equal(t, "10:00 AM", body.PeakHours[0].Hour)
	assert.Equal(t, 2, body.PeakHours[0].Orders)
}

func TestDataNotLoaded(t *testing.T) {
	srv := New(nil)
	for _, path := range []string{"/kpis", "/categories/top", "/orders/distribution"} {
		rec := get(t, srv, path)
		require.Equal(t, http.StatusInternalServerError, rec.Code, "path=%s", path)

		var body types.ErrorResponse
		decode(t, rec, &body)
		assert.Equal(t, "error", body.Status)
		assert.Equal(t, "Data not loaded", body.Message)
	}
}

func TestUnknownPathUsesErrorEnvelope(t *testing.T) {
	rec := get(t, New(sampleTable()), "/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body types.ErrorResponse
	decode(t, rec, &body)
	assert.Equal(t, "error", body.Status)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := New(sampleTable())
	req := httptest.NewRequest(http.MethodPost, "/kpis", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var body types.ErrorResponse
	decode(t, rec, &body)
	assert.Equal(t, "error", body.Status)
}
