package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRegex   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ParseDate reads the date shapes the directory and the date input produce.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)

	//Case 1: full timestamp "2024-05-01T10:00:00Z"
	if t, err := time.Parse(time.RFC3339Nano, dateStr); err == nil {
		return t, nil
	}

	//Case 2: timestamp without zone, as some backends emit it
	if t, err := time.Parse("2006-01-02T15:04:05", dateStr); err == nil {
		return t.UTC(), nil
	}

	//Case 3: ISO date "2024-05-01"
	if isoDateRegex.MatchString(dateStr) {
		return time.Parse("2006-01-02", dateStr)
	}

	//case 4: dd/mm/yyyy
	if match := slashDateRegex.FindStringSubmatch(dateStr); match != nil {
		day, _ := strconv.Atoi(match[1])
		month, _ := strconv.Atoi(match[2])
		year, _ := strconv.Atoi(match[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, fmt.Errorf("invalid date %q", dateStr)
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", dateStr)
}
