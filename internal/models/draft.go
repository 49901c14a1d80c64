package models

import (
	"strconv"
	"strings"
)

// Field names a form input of the posting form.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldSkills      Field = "skills"
	FieldLocation    Field = "location"
	FieldSalaryMin   Field = "salary_min"
	FieldSalaryMax   Field = "salary_max"
	FieldCreatedAt   Field = "created_at"
)

// DraftFields lists the form inputs in display order.
var DraftFields = []Field{
	FieldTitle,
	FieldDescription,
	FieldSkills,
	FieldLocation,
	FieldSalaryMin,
	FieldSalaryMax,
	FieldCreatedAt,
}

// JobDraft is the in-progress posting. Salaries stay free text until submit
// so half-typed numbers are never rejected.
type JobDraft struct {
	Title       string
	Description string
	Skills      string
	Location    string
	SalaryMin   string
	SalaryMax   string
	CreatedAt   string
}

// Set stores value under name. Unknown names are ignored and reported false.
func (d *JobDraft) Set(name Field, value string) bool {
	switch name {
	case FieldTitle:
		d.Title = value
	case FieldDescription:
		d.Description = value
	case FieldSkills:
		d.Skills = value
	case FieldLocation:
		d.Location = value
	case FieldSalaryMin:
		d.SalaryMin = value
	case FieldSalaryMax:
		d.SalaryMax = value
	case FieldCreatedAt:
		d.CreatedAt = value
	default:
		return false
	}
	return true
}

func (d JobDraft) Get(name Field) string {
	switch name {
	case FieldTitle:
		return d.Title
	case FieldDescription:
		return d.Description
	case FieldSkills:
		return d.Skills
	case FieldLocation:
		return d.Location
	case FieldSalaryMin:
		return d.SalaryMin
	case FieldSalaryMax:
		return d.SalaryMax
	case FieldCreatedAt:
		return d.CreatedAt
	}
	return ""
}

func (d JobDraft) IsEmpty() bool {
	return d == JobDraft{}
}

// PostJobPayload is the body of POST /jobs. A nil salary is the
// not-a-number sentinel and encodes as JSON null.
type PostJobPayload struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Skills      string `json:"skills"`
	Location    string `json:"location"`
	SalaryMin   *int   `json:"salary_min" binding:"required"`
	SalaryMax   *int   `json:"salary_max" binding:"required"`
	CreatedAt   string `json:"created_at"`
}

// Payload sends the text fields verbatim and coerces the salaries.
func (d JobDraft) Payload() PostJobPayload {
	return PostJobPayload{
		Title:       d.Title,
		Description: d.Description,
		Skills:      d.Skills,
		Location:    d.Location,
		SalaryMin:   CoerceSalary(d.SalaryMin),
		SalaryMax:   CoerceSalary(d.SalaryMax),
		CreatedAt:   d.CreatedAt,
	}
}

// CoerceSalary reads the leading integer of text: leading spaces, an optional
// sign, then digits up to the first non-digit. No digits yields nil.
func CoerceSalary(text string) *int {
	s := strings.TrimLeft(text, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}
