// Package submission owns the posting form: draft fields, salary coercion and
// the submit lifecycle.
package submission

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go-jobboard/internal/models"
)

const (
	MsgPostSucceeded = "Job posted successfully!"
	MsgPostFailed    = "Failed to post the job. Please try again."
)

// ErrSubmitInFlight is returned by Submit while another submission is pending.
var ErrSubmitInFlight = errors.New("submission already in flight")

type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
)

func (s Status) String() string {
	if s == StatusSubmitting {
		return "submitting"
	}
	return "idle"
}

// Poster is the write side of the job directory.
type Poster interface {
	PostJob(ctx context.Context, payload models.PostJobPayload) error
}

// Notifier is told about every posting the service acknowledged.
type Notifier interface {
	JobPosted(ctx context.Context, payload models.PostJobPayload) error
}

// Outcome is the result of one Submit.
type Outcome struct {
	Succeeded bool
	Message   string
	Payload   models.PostJobPayload
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

type Controller struct {
	poster   Poster
	notifier Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	draft   models.JobDraft
	status  Status
	message string
}

func New(poster Poster, opts ...Option) *Controller {
	c := &Controller{
		poster: poster,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetField updates one field of the draft. It reports whether name is a
// known field; unknown names leave the draft untouched.
func (c *Controller) SetField(name models.Field, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Set(name, value)
}

func (c *Controller) Draft() models.JobDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Message is the outcome of the last finished submission, or empty.
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Submit sends the draft with coerced salaries. On success the draft is reset;
// on failure it is kept for another attempt. Edits made while the request is
// pending are kept on failure and discarded on success.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if c.status == StatusSubmitting {
		c.mu.Unlock()
		return Outcome{}, ErrSubmitInFlight
	}
	c.status = StatusSubmitting
	c.message = ""
	payload := c.draft.Payload()
	c.mu.Unlock()

	err := c.poster.PostJob(ctx, payload)

	c.mu.Lock()
	c.status = StatusIdle
	out := Outcome{Payload: payload}
	if err != nil {
		c.message = MsgPostFailed
		out.Message = MsgPostFailed
		c.mu.Unlock()
		c.logger.Error("post job failed", slog.String("title", payload.Title), slog.String("error", err.Error()))
		return out, nil
	}
	c.draft = models.JobDraft{}
	c.message = MsgPostSucceeded
	out.Succeeded = true
	out.Message = MsgPostSucceeded
	c.mu.Unlock()

	c.logger.Info("job posted", slog.String("title", payload.Title))
	if c.notifier != nil {
		if nerr := c.notifier.JobPosted(ctx, payload); nerr != nil {
			c.logger.Warn("job posted notification failed", slog.String("error", nerr.Error()))
		}
	}
	return out, nil
}
