package feed

import (
	"fmt"

	"go-jobboard/internal/models"
)

// Status is the visual condition of the job list.
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusEmpty
	StatusPopulated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusEmpty:
		return "empty"
	case StatusPopulated:
		return "populated"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// State is replaced wholesale on every completed fetch, never patched.
// Message is set only for StatusError, Jobs only for StatusPopulated.
type State struct {
	Status  Status
	Message string
	Jobs    []models.JobRecord
}

func Loading() State { return State{Status: StatusLoading} }

func Failed(message string) State { return State{Status: StatusError, Message: message} }

// FromJobs maps a successful result to Empty or Populated.
func FromJobs(jobs []models.JobRecord) State {
	if len(jobs) == 0 {
		return State{Status: StatusEmpty}
	}
	return State{Status: StatusPopulated, Jobs: jobs}
}

func (s State) clone() State {
	if s.Jobs != nil {
		s.Jobs = append([]models.JobRecord(nil), s.Jobs...)
	}
	return s
}
