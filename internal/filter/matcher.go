// Package filter matches job records against free-text keywords.
package filter

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-jobboard/internal/models"
)

// Normalize lowercases s and strips diacritics, so "Hồ Chí Minh" matches "ho chi minh".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	//đ has no combining form
	result = strings.NewReplacer("đ", "d", "Đ", "D").Replace(result)
	return strings.ToLower(result)
}

// Terms splits a keyword into normalized search terms.
func Terms(keyword string) []string {
	return strings.Fields(Normalize(keyword))
}

// Matches reports whether every term of keyword appears in the title,
// description, skills or location of job. A blank keyword matches everything.
func Matches(job models.JobRecord, keyword string) bool {
	text := Normalize(job.Title + " " + job.Description + " " + job.Skills + " " + job.Location)
	for _, term := range Terms(keyword) {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

// Score ranks a matching job: hits in the title weigh most, then skills,
// then description and location.
func Score(job models.JobRecord, keyword string) int {
	title := Normalize(job.Title)
	skills := Normalize(job.Skills)
	rest := Normalize(job.Description + " " + job.Location)

	score := 0
	for _, term := range Terms(keyword) {
		if strings.Contains(title, term) {
			score += 3
		}
		if strings.Contains(skills, term) {
			score += 2
		}
		if strings.Contains(rest, term) {
			score++
		}
	}
	return score
}

// Search keeps the jobs matching keyword, best score first. Ties keep input order.
func Search(jobs []models.JobRecord, keyword string) []models.JobRecord {
	matched := make([]models.JobRecord, 0, len(jobs))
	for _, job := range jobs {
		if Matches(job, keyword) {
			matched = append(matched, job)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return Score(matched[i], keyword) > Score(matched[j], keyword)
	})
	return matched
}
