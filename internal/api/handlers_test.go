package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenscatalog/dpreview-scraper/internal/database"
)

type fakeStore struct {
	rows map[string]*database.CameraRow
	err  error
}

func (f *fakeStore) GetCamera(_ context.Context, productCode string) (*database.CameraRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[productCode], nil
}

func (f *fakeStore) ListCameras(_ context.Context, limit, offset int) ([]*database.CameraRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*database.CameraRow
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeStore) CountCamerasByStatus(_ context.Context) (map[database.CameraStatus]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[database.CameraStatus]int)
	for _, row := range f.rows {
		counts[row.Status]++
	}
	return counts, nil
}

func newTestRouter(store CameraStore) http.Handler {
	return NewRouter(NewHandlers(store, slog.Default()))
}

func TestParseEndpoint(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	body, err := json.Marshal(ParseRequest{
		ProductCode:  "sony_a7v",
		URL:          "https://www.dpreview.com/products/sony/slrs/sony_a7v",
		OverviewHTML: `<h1>Sony a7 V Overview</h1>`,
		SpecsHTML: `<table class="specsTable compact"><tbody>
			<tr><th class="label">Body type</th><td class="value">SLR-style mirrorless</td></tr>
		</tbody></table>`,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var camera map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &camera))
	assert.Equal(t, "Sony a7 V", camera["Name"])
	assert.Equal(t, "/products/sony/slrs/sony_a7v", camera["URL"])

	specs, ok := camera["Specs"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "SLR-style mirrorless", specs["BodyType"])
}

func TestParseEndpointValidation(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	tests := []struct {
		name string
		body string
	}{
		{name: "Malformed JSON", body: `{not json`},
		{name: "Missing product code", body: `{"overview_html":"<p></p>","specs_html":"<p></p>"}`},
		{name: "Missing HTML", body: `{"product_code":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetCamera(t *testing.T) {
	store := &fakeStore{rows: map[string]*database.CameraRow{
		"sony_a7v": {
			ProductCode: "sony_a7v",
			Name:        "Sony a7 V",
			Status:      database.StatusCompleted,
			ReviewScore: sql.NullInt32{Int32: 91, Valid: true},
			Record:      json.RawMessage(`{"ProductCode":"sony_a7v"}`),
		},
	}}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cameras/sony_a7v", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Sony a7 V", resp["name"])
	assert.Equal(t, float64(91), resp["review_score"])

	record, ok := resp["record"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "sony_a7v", record["ProductCode"])
}

func TestGetCameraNotFound(t *testing.T) {
	router := newTestRouter(&fakeStore{rows: map[string]*database.CameraRow{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cameras/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCameras(t *testing.T) {
	store := &fakeStore{rows: map[string]*database.CameraRow{
		"a": {ProductCode: "a", Status: database.StatusCompleted},
		"b": {ProductCode: "b", Status: database.StatusCompleted},
	}}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cameras?limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["count"])
	assert.Equal(t, float64(10), resp["limit"])
}

func TestGetStats(t *testing.T) {
	store := &fakeStore{rows: map[string]*database.CameraRow{
		"a": {ProductCode: "a", Status: database.StatusCompleted},
		"b": {ProductCode: "b", Status: database.StatusCompleted},
		"c": {ProductCode: "c", Status: database.StatusFailed},
	}}
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats["completed"])
	assert.Equal(t, 1, stats["failed"])
	assert.Equal(t, 3, stats["total"])
}

func TestStoreError(t *testing.T) {
	router := newTestRouter(&fakeStore{err: fmt.Errorf("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
