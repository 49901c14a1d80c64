package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"go-jobboard/internal/directory"
	"go-jobboard/internal/feed"
	"go-jobboard/internal/models"
	"go-jobboard/internal/render"
	"go-jobboard/internal/submission"
)

const helpText = `Type to search jobs. A blank line shows every job.
  /feed  reload the job list
  /post  post a new job
  /help  show this help
  /quit  exit`

var fieldPrompts = map[models.Field]string{
	models.FieldTitle:       "Job Title",
	models.FieldDescription: "Job Description",
	models.FieldSkills:      "Skills (comma separated)",
	models.FieldLocation:    "Location",
	models.FieldSalaryMin:   "Min Salary",
	models.FieldSalaryMax:   "Max Salary",
	models.FieldCreatedAt:   "Date Posted (YYYY-MM-DD)",
}

// lockedWriter serialises writes from search goroutines and the input loop.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type session struct {
	feed     *feed.Controller
	form     *submission.Controller
	out      *lockedWriter
	in       *bufio.Scanner
	searches sync.WaitGroup
}

func newSession(dir directory.Directory, notifier submission.Notifier, in io.Reader, out io.Writer, logger *slog.Logger) *session {
	s := &session{
		out: &lockedWriter{w: out},
		in:  bufio.NewScanner(in),
	}
	s.feed = feed.New(dir, feed.WithLogger(logger), feed.WithOnChange(s.showFeed))

	opts := []submission.Option{submission.WithLogger(logger)}
	if notifier != nil {
		opts = append(opts, submission.WithNotifier(notifier))
	}
	s.form = submission.New(dir, opts...)
	return s
}

func (s *session) showFeed(state feed.State) {
	var b strings.Builder
	if err := render.Feed(&b, state); err != nil {
		return
	}
	s.printf("%s", b.String())
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// run reads commands until /quit, EOF or ctx is done.
func (s *session) run(ctx context.Context) error {
	s.printf("%s\n", helpText)
	s.feed.LoadDefaultFeed(ctx)

	for {
		line, ok := s.readLine(ctx, "🔎 ")
		if !ok {
			break
		}
		switch strings.TrimSpace(line) {
		case "/quit":
			s.wait()
			return nil
		case "/help":
			s.printf("%s\n", helpText)
		case "/feed":
			s.feed.LoadDefaultFeed(ctx)
		case "/post":
			if err := s.post(ctx); err != nil {
				s.wait()
				return err
			}
		default:
			s.search(ctx, line)
		}
	}
	s.wait()
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return ctx.Err()
}

// search fires without waiting; a later keystroke supersedes it.
func (s *session) search(ctx context.Context, keyword string) {
	s.searches.Add(1)
	go func() {
		defer s.searches.Done()
		s.feed.Search(ctx, keyword)
	}()
}

func (s *session) wait() { s.searches.Wait() }

func (s *session) post(ctx context.Context) error {
	s.printf("📝 Post a Job\n")
	for _, field := range models.DraftFields {
		current := s.form.Draft().Get(field)
		prompt := fieldPrompts[field]
		if current != "" {
			prompt += " [" + current + "]"
		}
		value, ok := s.readLine(ctx, prompt+": ")
		if !ok {
			return errors.New("input closed while posting")
		}
		if value != "" {
			s.form.SetField(field, value)
		}
	}

	s.printf("%s\n", render.ButtonSubmitting)
	out, err := s.form.Submit(ctx)
	if errors.Is(err, submission.ErrSubmitInFlight) {
		s.printf("⏳ A job is already being posted.\n")
		return nil
	}
	if err != nil {
		return err
	}
	s.printf("%s\n", render.SubmitMessage(out.Message))
	return nil
}

func (s *session) readLine(ctx context.Context, prompt string) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	s.printf("%s", prompt)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}
