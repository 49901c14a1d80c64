// Package feed owns the job list: initial load, live keyword search and the
// loading/error/empty states shown for it.
package feed

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"go-jobboard/internal/models"
)

const (
	MsgLoadFailed   = "Failed to load jobs."
	MsgSearchFailed = "Failed to search jobs."
)

// Source is the read side of the job directory.
type Source interface {
	ListNotApplied(ctx context.Context) ([]models.JobRecord, error)
	Search(ctx context.Context, keyword string) ([]models.JobRecord, error)
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOnChange registers fn to receive every visible state, in order.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller is the single writer of the feed state. Every call takes a
// sequence number; only the response of the latest call may land.
type Controller struct {
	source   Source
	logger   *slog.Logger
	onChange func(State)

	mu      sync.Mutex
	state   State
	seq     uint64
	version uint64
	cancel  context.CancelFunc

	notifyMu  sync.Mutex
	delivered uint64
}

// New starts in Loading, matching a list view that has not fetched yet.
func New(source Source, opts ...Option) *Controller {
	c := &Controller{
		source: source,
		logger: slog.Default(),
		state:  Loading(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot safe to keep.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// LoadDefaultFeed fetches every posting the viewer has not applied to.
func (c *Controller) LoadDefaultFeed(ctx context.Context) State {
	return c.run(ctx, "load", MsgLoadFailed, func(ctx context.Context) ([]models.JobRecord, error) {
		return c.source.ListNotApplied(ctx)
	})
}

// Search queries by keyword. A blank keyword is a full reset to the default feed.
func (c *Controller) Search(ctx context.Context, keyword string) State {
	if strings.TrimSpace(keyword) == "" {
		return c.LoadDefaultFeed(ctx)
	}
	return c.run(ctx, "search", MsgSearchFailed, func(ctx context.Context) ([]models.JobRecord, error) {
		return c.source.Search(ctx, keyword)
	})
}

func (c *Controller) run(ctx context.Context, op, failMsg string, fetch func(context.Context) ([]models.JobRecord, error)) State {
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	c.seq++
	seq := c.seq
	//supersede the previous request
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	loading, version := c.setLocked(Loading())
	c.mu.Unlock()
	c.notify(loading, version)

	jobs, err := fetch(reqCtx)

	c.mu.Lock()
	if seq != c.seq {
		current := c.state.clone()
		c.mu.Unlock()
		c.logger.Debug("discarding stale feed response", slog.String("op", op), slog.Uint64("seq", seq))
		return current
	}
	c.cancel = nil
	var next State
	if err != nil {
		c.logger.Error("feed request failed", slog.String("op", op), slog.String("error", err.Error()))
		next = Failed(failMsg)
	} else {
		next = FromJobs(jobs)
	}
	terminal, version := c.setLocked(next)
	c.mu.Unlock()
	c.notify(terminal, version)

	return terminal
}

func (c *Controller) setLocked(next State) (State, uint64) {
	c.state = next
	c.version++
	return next.clone(), c.version
}

// notify delivers states in version order and drops any that were overtaken.
func (c *Controller) notify(state State, version uint64) {
	if c.onChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if version <= c.delivered {
		return
	}
	c.delivered = version
	c.onChange(state)
}
