package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// JobRecord is a posting as served by the job directory. Read-only on the client.
// salary_min <= salary_max is assumed, never checked.
type JobRecord struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Skills      string    `json:"skills"`
	Location    string    `json:"location"`
	Source      string    `json:"source"`
	SalaryMin   float64   `json:"salary_min" validate:"gte=0"`
	SalaryMax   float64   `json:"salary_max" validate:"gte=0"`
	CreatedAt   Timestamp `json:"created_at"`
	LinkToApply string    `json:"link_to_apply" validate:"omitempty,url"`
}

// JobsResponse is the envelope of both listing endpoints.
type JobsResponse struct {
	Jobs []JobRecord `json:"jobs" validate:"required,dive"`
}

var ErrMalformedResponse = errors.New("malformed jobs response")

// DecodeJobsResponse parses and validates a listing payload.
// A missing "jobs" key is malformed; an empty list is not.
func DecodeJobsResponse(data []byte) ([]JobRecord, error) {
	var resp JobsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := validate.Struct(resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return resp.Jobs, nil
}

// Timestamp accepts RFC 3339 timestamps as well as bare dates.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}
