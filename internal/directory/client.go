// Package directory talks to the job directory service over HTTP.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"go-jobboard/internal/models"
)

const maxBodyBytes = 4 << 20

// Directory is the set of operations the controllers need from the service.
type Directory interface {
	ListNotApplied(ctx context.Context) ([]models.JobRecord, error)
	Search(ctx context.Context, keyword string) ([]models.JobRecord, error)
	PostJob(ctx context.Context, payload models.PostJobPayload) error
}

// TransportError covers every way a call can fail: network, non-2xx status,
// or a payload that does not match the schema.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("directory %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("directory %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *HTTPClient {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPClient{
		baseURL:    trimmed,
		httpClient: httpClient,
		logger:     logger,
	}
}

// ListNotApplied returns every posting the viewer has not applied to.
func (c *HTTPClient) ListNotApplied(ctx context.Context) ([]models.JobRecord, error) {
	return c.getJobs(ctx, "list", c.baseURL+"/jobs/not-applied")
}

// Search returns the postings matching keyword, as judged by the service.
func (c *HTTPClient) Search(ctx context.Context, keyword string) ([]models.JobRecord, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	return c.getJobs(ctx, "search", c.baseURL+"/jobs/search?"+params.Encode())
}

// PostJob creates a posting. Any 2xx counts as success; the body is ignored.
func (c *HTTPClient) PostJob(ctx context.Context, payload models.PostJobPayload) error {
	const op = "post"
	body, err := json.Marshal(payload)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("encode job: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jobs", bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, op)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	return nil
}

func (c *HTTPClient) getJobs(ctx context.Context, op, endpoint string) ([]models.JobRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}

	resp, err := c.do(req, op)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	jobs, err := models.DecodeJobsResponse(payload)
	if err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	return jobs, nil
}

// do sends req and returns the response only when the status is 2xx.
func (c *HTTPClient) do(req *http.Request, op string) (*http.Response, error) {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("directory request", slog.String("op", op), slog.String("method", req.Method), slog.String("url", req.URL.String()), slog.String("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("send request: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(snippet)))}
	}
	return resp, nil
}
