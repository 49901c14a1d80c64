package submission

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobboard/internal/directory"
	"go-jobboard/internal/models"
)

type fakePoster struct {
	mu       sync.Mutex
	err      error
	gate     chan struct{}
	started  chan struct{}
	payloads []models.PostJobPayload
}

func (f *fakePoster) PostJob(ctx context.Context, payload models.PostJobPayload) error {
	f.mu.Lock()
	f.payloads = append(f.payloads, payload)
	gate := f.gate
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	return f.err
}

func (f *fakePoster) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

type fakeNotifier struct {
	err    error
	posted []models.PostJobPayload
}

func (n *fakeNotifier) JobPosted(ctx context.Context, payload models.PostJobPayload) error {
	n.posted = append(n.posted, payload)
	return n.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fillDraft(c *Controller) {
	c.SetField(models.FieldTitle, "Go Developer")
	c.SetField(models.FieldDescription, "Build services")
	c.SetField(models.FieldSkills, "Go, SQL")
	c.SetField(models.FieldLocation, "Remote")
	c.SetField(models.FieldSalaryMin, "50000")
	c.SetField(models.FieldSalaryMax, "70000")
	c.SetField(models.FieldCreatedAt, "2024-05-01")
}

func TestSetField(t *testing.T) {
	c := New(&fakePoster{}, WithLogger(quietLogger()))

	assert.True(t, c.SetField(models.FieldTitle, "Go Developer"))
	assert.True(t, c.SetField(models.FieldSalaryMin, "not a number"))
	assert.False(t, c.SetField(models.Field("company"), "Acme"))

	draft := c.Draft()
	assert.Equal(t, "Go Developer", draft.Title)
	assert.Equal(t, "not a number", draft.SalaryMin)
	assert.Equal(t, StatusIdle, c.Status())
	assert.Empty(t, c.Message())
}

func TestSubmit_Success(t *testing.T) {
	poster := &fakePoster{}
	notifier := &fakeNotifier{}
	c := New(poster, WithLogger(quietLogger()), WithNotifier(notifier))
	fillDraft(c)

	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Succeeded)
	assert.Equal(t, "Job posted successfully!", out.Message)
	assert.Equal(t, MsgPostSucceeded, c.Message())
	assert.True(t, c.Draft().IsEmpty())
	assert.Equal(t, StatusIdle, c.Status())

	require.Len(t, poster.payloads, 1)
	got := poster.payloads[0]
	assert.Equal(t, "Go Developer", got.Title)
	assert.Equal(t, "2024-05-01", got.CreatedAt)
	require.NotNil(t, got.SalaryMin)
	require.NotNil(t, got.SalaryMax)
	assert.Equal(t, 50000, *got.SalaryMin)
	assert.Equal(t, 70000, *got.SalaryMax)

	require.Len(t, notifier.posted, 1)
	assert.Equal(t, got, notifier.posted[0])
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	poster := &fakePoster{err: errors.New("status 500")}
	notifier := &fakeNotifier{}
	c := New(poster, WithLogger(quietLogger()), WithNotifier(notifier))
	fillDraft(c)
	before := c.Draft()

	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, out.Succeeded)
	assert.Equal(t, "Failed to post the job. Please try again.", c.Message())
	assert.Equal(t, before, c.Draft())
	assert.Equal(t, StatusIdle, c.Status())
	assert.Empty(t, notifier.posted)
}

func TestSubmit_NotifierFailureIgnored(t *testing.T) {
	c := New(&fakePoster{}, WithLogger(quietLogger()), WithNotifier(&fakeNotifier{err: errors.New("telegram down")}))
	fillDraft(c)

	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Succeeded)
	assert.True(t, c.Draft().IsEmpty())
}

func TestSubmit_RetryAfterFailure(t *testing.T) {
	poster := &fakePoster{err: errors.New("timeout")}
	c := New(poster, WithLogger(quietLogger()))
	fillDraft(c)

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MsgPostFailed, c.Message())

	poster.err = nil
	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Succeeded)
	require.Len(t, poster.payloads, 2)
	assert.Equal(t, poster.payloads[0], poster.payloads[1])
}

func TestSubmit_ClearsMessageWhileSubmitting(t *testing.T) {
	poster := &fakePoster{err: errors.New("down"), started: make(chan struct{}, 1)}
	c := New(poster, WithLogger(quietLogger()))
	fillDraft(c)
	_, _ = c.Submit(context.Background())
	<-poster.started
	require.Equal(t, MsgPostFailed, c.Message())

	poster.mu.Lock()
	poster.err = nil
	poster.gate = make(chan struct{})
	poster.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Submit(context.Background())
	}()
	<-poster.started

	assert.Equal(t, StatusSubmitting, c.Status())
	assert.Empty(t, c.Message())

	close(poster.gate)
	<-done
	assert.Equal(t, MsgPostSucceeded, c.Message())
}

func TestSubmit_RejectsConcurrentSubmit(t *testing.T) {
	poster := &fakePoster{gate: make(chan struct{}), started: make(chan struct{}, 1)}
	c := New(poster, WithLogger(quietLogger()))
	fillDraft(c)

	done := make(chan Outcome, 1)
	go func() {
		out, _ := c.Submit(context.Background())
		done <- out
	}()

	select {
	case <-poster.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first submit never reached the poster")
	}

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(poster.gate)
	out := <-done
	assert.True(t, out.Succeeded)
	assert.Equal(t, 1, poster.calls())
}

func TestSubmit_CoercesSalaries(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		wantMin  string
		wantMax  string
	}{
		{name: "Plain integers", min: "50000", max: "70000", wantMin: "50000", wantMax: "70000"},
		{name: "Trailing garbage", min: "42k", max: " 90000 USD", wantMin: "42", wantMax: "90000"},
		{name: "Not a number", min: "abc", max: "", wantMin: "null", wantMax: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]json.RawMessage
			var posts atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				posts.Add(1)
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/jobs", r.URL.Path)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				w.WriteHeader(http.StatusCreated)
			}))
			defer srv.Close()

			c := New(directory.NewClient(srv.URL, srv.Client(), quietLogger()), WithLogger(quietLogger()))
			c.SetField(models.FieldTitle, "Go Developer")
			c.SetField(models.FieldSalaryMin, tt.min)
			c.SetField(models.FieldSalaryMax, tt.max)

			out, err := c.Submit(context.Background())
			require.NoError(t, err)
			assert.True(t, out.Succeeded)
			assert.Equal(t, int32(1), posts.Load())
			assert.Equal(t, tt.wantMin, string(body["salary_min"]))
			assert.Equal(t, tt.wantMax, string(body["salary_max"]))
			assert.Equal(t, `"Go Developer"`, string(body["title"]))
		})
	}
}

func TestSubmit_ServerErrorIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(directory.NewClient(srv.URL, srv.Client(), quietLogger()), WithLogger(quietLogger()))
	fillDraft(c)

	out, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, out.Succeeded)
	assert.Equal(t, MsgPostFailed, c.Message())
	assert.Equal(t, "Go Developer", c.Draft().Title)
}
