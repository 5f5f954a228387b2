package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearview/location-insights/entities"
	"github.com/nearview/location-insights/models"
	"github.com/nearview/location-insights/web"
)

type testServer struct {
	svc  *web.Service
	repo *memRepo
}

func newTestServer(t *testing.T) (*httptest.Server, *testServer) {
	t.Helper()

	repo := newMemRepo()
	svc := web.NewService(repo, nil)

	srv, err := web.New(svc, ":0", nil)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts, &testServer{svc: svc, repo: repo}
}

func createRequestBody(t *testing.T) *bytes.Buffer {
	t.Helper()

	req := models.CreateAnalysisRequest{
		Name: "Sample Address 1",
		AnalysisData: models.AnalysisData{
			Search: &entities.SearchResponse{
				Results: map[entities.TransportMode]*entities.ModeResult{
					entities.ModeWalk: {LocationsOfInterest: []entities.LocationOfInterest{
						{
							Entity:         entities.SourceEntity{ID: "rest-1", Name: "Trattoria", Type: "restaurant"},
							DistanceMeters: 200,
						},
					}},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(req))

	return &buf
}

func TestCreateAnalysis(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/analyses", "application/json", createRequestBody(t))
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.CreateAnalysisResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
}

func TestCreateAnalysisRejectsEmptyBody(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/analyses", "application/json", strings.NewReader(`{"name":"empty"}`))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGetGroupsLifecycle(t *testing.T) {
	ts, deps := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/analyses", "application/json", createRequestBody(t))
	require.NoError(t, err)

	var created models.CreateAnalysisResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	// not computed yet
	resp, err = http.Get(ts.URL + "/api/v1/analyses/" + created.ID + "/groups")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	require.NoError(t, deps.svc.Compute(context.Background(), created.ID))

	resp, err = http.Get(ts.URL + "/api/v1/analyses/" + created.ID + "/groups")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var groups []entities.Group
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&groups))

	require.Len(t, groups, 1)
	assert.Equal(t, "restaurant", groups[0].Category)
	require.Len(t, groups[0].Items, 1)
	assert.Equal(t, "rest-1", groups[0].Items[0].ID)
}

func TestGetGroupsModeFilter(t *testing.T) {
	ts, deps := newTestServer(t)

	analysis := testAnalysis("a-1")
	require.NoError(t, deps.svc.Create(context.Background(), &analysis))
	require.NoError(t, deps.svc.Compute(context.Background(), "a-1"))

	resp, err := http.Get(ts.URL + "/api/v1/analyses/a-1/groups?modes=car")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var groups []entities.Group
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&groups))

	require.Len(t, groups, 2)
	assert.Empty(t, groups[0].Items)
	assert.Len(t, groups[1].Items, 1)
}

func TestGetGroupsInvalidMode(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/analyses/a-1/groups?modes=teleport")
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGetAnalysisNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/analyses/missing")
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateSettings(t *testing.T) {
	ts, deps := newTestServer(t)

	analysis := testAnalysis("a-1")
	require.NoError(t, deps.svc.Create(context.Background(), &analysis))
	require.NoError(t, deps.svc.Compute(context.Background(), "a-1"))

	body := strings.NewReader(`{"hiddenGroups":["cafe"]}`)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/analyses/a-1/settings", body)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	stored, err := deps.svc.Get(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestDeleteAnalysis(t *testing.T) {
	ts, deps := newTestServer(t)

	analysis := testAnalysis("a-1")
	require.NoError(t, deps.svc.Create(context.Background(), &analysis))

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/analyses/a-1", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = deps.svc.Get(context.Background(), "a-1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDownloadCSV(t *testing.T) {
	ts, deps := newTestServer(t)

	analysis := testAnalysis("a-1")
	analysis.Date = time.Now().UTC()
	require.NoError(t, deps.svc.Create(context.Background(), &analysis))
	require.NoError(t, deps.svc.Compute(context.Background(), "a-1"))

	resp, err := http.Get(ts.URL + "/api/v1/analyses/a-1/download")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3) // header + two entities
}
