// Package render turns controller state into terminal text.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"go-jobboard/internal/feed"
	"go-jobboard/internal/models"
	"go-jobboard/internal/submission"
)

const (
	LoadingText = "Loading jobs..."
	EmptyText   = "No jobs found. Try a different search."

	ButtonIdle       = "Post Job"
	ButtonSubmitting = "Posting..."

	postedLayout = "Jan 02"
)

var printer = message.NewPrinter(language.English)

// Feed writes the feed the way the list page shows it: one line for loading,
// error and empty states, and a card per job otherwise.
func Feed(w io.Writer, state feed.State) error {
	var err error
	switch state.Status {
	case feed.StatusLoading:
		_, err = fmt.Fprintln(w, LoadingText)
	case feed.StatusError:
		_, err = fmt.Fprintf(w, "❌ %s\n", state.Message)
	case feed.StatusEmpty:
		_, err = fmt.Fprintln(w, EmptyText)
	case feed.StatusPopulated:
		for i, job := range state.Jobs {
			if i > 0 {
				if _, err = fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err = io.WriteString(w, Card(job)); err != nil {
				return err
			}
		}
	}
	return err
}

// Card renders a single job.
func Card(job models.JobRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📌 %s\n", job.Title)
	if job.Description != "" {
		fmt.Fprintf(&b, "   %s\n", job.Description)
	}
	fmt.Fprintf(&b, "   Location: %s\n", job.Location)
	fmt.Fprintf(&b, "   Skills: %s\n", job.Skills)
	fmt.Fprintf(&b, "   Source: %s\n", job.Source)
	fmt.Fprintf(&b, "   Salary: %s\n", SalaryRange(job.SalaryMin, job.SalaryMax))
	fmt.Fprintf(&b, "   Date Posted: %s\n", PostedDate(job.CreatedAt))
	if job.LinkToApply != "" {
		fmt.Fprintf(&b, "   Apply Now: %s\n", job.LinkToApply)
	}
	return b.String()
}

// SalaryRange formats "$50,000 - $70,000".
func SalaryRange(min, max float64) string {
	return "$" + amount(min) + " - $" + amount(max)
}

func amount(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.2f", v)
}

// PostedDate shows month and two-digit day, e.g. "May 01".
func PostedDate(ts models.Timestamp) string {
	if ts.IsZero() {
		return "Invalid Date"
	}
	return ts.Time.Format(postedLayout)
}

// ButtonLabel is the label of the submit button for the given status.
func ButtonLabel(status submission.Status) string {
	if status == submission.StatusSubmitting {
		return ButtonSubmitting
	}
	return ButtonIdle
}

// IsSuccess reports whether msg is shown in the success style.
func IsSuccess(msg string) bool {
	return strings.Contains(msg, "successfully")
}

// SubmitMessage prefixes msg with an outcome marker. Empty stays empty.
func SubmitMessage(msg string) string {
	if msg == "" {
		return ""
	}
	if IsSuccess(msg) {
		return "✅ " + msg
	}
	return "❌ " + msg
}
