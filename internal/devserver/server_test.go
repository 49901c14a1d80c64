package devserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobboard/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedJobs() []models.JobRecord {
	return []models.JobRecord{
		{Title: "Junior Golang Developer", Skills: "Go, Docker", Location: "Hồ Chí Minh", Source: "topcv", SalaryMin: 800, SalaryMax: 1200},
		{Title: "Frontend Engineer", Skills: "React", Location: "Remote", Source: "itviec"},
	}
}

func newTestServer(t *testing.T, store Store) (*Server, http.Handler) {
	t.Helper()
	s := New(store, quietLogger())
	s.now = func() time.Time { return time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC) }
	return s, s.Router()
}

func doRequest(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJobs(t *testing.T, rec *httptest.ResponseRecorder) []models.JobRecord {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	jobs, err := models.DecodeJobsResponse(rec.Body.Bytes())
	require.NoError(t, err)
	return jobs
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t, NewMemoryStore())
	rec := doRequest(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDEchoed(t *testing.T) {
	_, h := newTestServer(t, NewMemoryStore())
	req := httptest.NewRequest(http.MethodGet, "/jobs/not-applied", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestListNotApplied(t *testing.T) {
	_, h := newTestServer(t, NewMemoryStore(seedJobs()...))
	jobs := decodeJobs(t, doRequest(t, h, http.MethodGet, "/jobs/not-applied", nil))
	assert.Len(t, jobs, 2)
}

func TestListNotApplied_EmptyStoreIsEmptyList(t *testing.T) {
	_, h := newTestServer(t, NewMemoryStore())
	rec := doRequest(t, h, http.MethodGet, "/jobs/not-applied", nil)
	assert.JSONEq(t, `{"jobs": []}`, rec.Body.String())
}

func TestSearch(t *testing.T) {
	_, h := newTestServer(t, NewMemoryStore(seedJobs()...))

	tests := []struct {
		name    string
		target  string
		expects []string
	}{
		{name: "Title", target: "/jobs/search?keyword=golang", expects: []string{"Junior Golang Developer"}},
		{name: "Diacritic insensitive", target: "/jobs/search?keyword=ho+chi+minh", expects: []string{"Junior Golang Developer"}},
		{name: "Skills", target: "/jobs/search?keyword=REACT", expects: []string{"Frontend Engineer"}},
		{name: "No match", target: "/jobs/search?keyword=cobol", expects: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := decodeJobs(t, doRequest(t, h, http.MethodGet, tt.target, nil))
			titles := []string{}
			for _, job := range jobs {
				titles = append(titles, job.Title)
			}
			assert.Equal(t, tt.expects, titles)
		})
	}
}

func TestPostJob(t *testing.T) {
	_, h := newTestServer(t, NewMemoryStore())

	body := []byte(`{"title":"Go Developer","description":"APIs","skills":"Go","location":"Remote","salary_min":50000,"salary_max":70000,"created_at":"2024-05-01"}`)
	rec := doRequest(t, h, http.MethodPost, "/jobs", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	jobs := decodeJobs(t, doRequest(t, h, http.MethodGet, "/jobs/not-applied", nil))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Go Developer", jobs[0].Title)
	assert.Equal(t, ManualSource, jobs[0].Source)
	assert.Equal(t, 50000.0, jobs[0].SalaryMin)
	assert.Equal(t, 70000.0, jobs[0].SalaryMax)
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), jobs[0].CreatedAt.Time)
}

func TestPostJob_DefaultsCreatedAt(t *testing.T) {
	s, h := newTestServer(t, NewMemoryStore())

	rec := doRequest(t, h, http.MethodPost, "/jobs", []byte(`{"title":"SRE","salary_min":1,"salary_max":2}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	jobs, err := s.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, s.now(), jobs[0].CreatedAt.Time)
}

func TestPostJob_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Null salary", body: `{"title":"Go Developer","salary_min":null,"salary_max":70000}`},
		{name: "Missing salary", body: `{"title":"Go Developer","salary_min":50000}`},
		{name: "Missing title", body: `{"salary_min":1,"salary_max":2}`},
		{name: "Fractional salary", body: `{"title":"Go Developer","salary_min":1.5,"salary_max":2}`},
		{name: "Bad date", body: `{"title":"Go Developer","salary_min":1,"salary_max":2,"created_at":"yesterday"}`},
		{name: "Not JSON", body: `title=Go`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			_, h := newTestServer(t, store)
			rec := doRequest(t, h, http.MethodPost, "/jobs", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			jobs, err := store.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, jobs)
		})
	}
}

type brokenStore struct{}

func (brokenStore) List(ctx context.Context) ([]models.JobRecord, error) {
	return nil, errors.New("disk on fire")
}
func (brokenStore) Add(ctx context.Context, job models.JobRecord) error {
	return errors.New("disk on fire")
}
func (brokenStore) Close() error { return nil }

func TestStoreFailureIs500(t *testing.T) {
	_, h := newTestServer(t, brokenStore{})

	assert.Equal(t, http.StatusInternalServerError, doRequest(t, h, http.MethodGet, "/jobs/not-applied", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, doRequest(t, h, http.MethodGet, "/jobs/search?keyword=go", nil).Code)

	body, err := json.Marshal(map[string]any{"title": "SRE", "salary_min": 1, "salary_max": 2})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, doRequest(t, h, http.MethodPost, "/jobs", body).Code)
}
