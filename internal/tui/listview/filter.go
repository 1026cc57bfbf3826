package listview

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/userdesk/internal/users"
)

// maxSuggestDistance bounds how far a username may be from the query and
// still be offered as a suggestion.
const maxSuggestDistance = 3

// Filter returns the records whose search text contains query,
// case-insensitively. The query is trimmed; an empty query matches all.
// The input slice is never modified.
func Filter(list []users.User, query string) []users.User {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]users.User, 0, len(list))
	for _, u := range list {
		if q == "" || strings.Contains(strings.ToLower(u.SearchText()), q) {
			out = append(out, u)
		}
	}
	return out
}

// TotalPages is ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	if size < 1 {
		size = 1
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage moves page into [1, total].
func ClampPage(page, total int) int {
	if total < 1 {
		total = 1
	}
	return max(1, min(page, total))
}

// Page is one derived page of the filtered list.
type Page struct {
	Rows       []users.User
	Number     int
	TotalPages int
	Matches    int
}

// Paginate slices out page (clamped) of filtered.
func Paginate(filtered []users.User, page, size int) Page {
	if size < 1 {
		size = 1
	}
	total := TotalPages(len(filtered), size)
	page = ClampPage(page, total)
	start := (page - 1) * size
	end := min(start+size, len(filtered))
	rows := []users.User{}
	if start < end {
		rows = filtered[start:end]
	}
	return Page{Rows: rows, Number: page, TotalPages: total, Matches: len(filtered)}
}

// Suggest returns the username closest to query when nothing matched it.
func Suggest(list []users.User, query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, u := range list {
		name := strings.ToLower(u.Username)
		if name == "" {
			continue
		}
		if d := levenshtein.ComputeDistance(q, name); d < bestDist {
			best, bestDist = u.Username, d
		}
	}
	if best == "" || bestDist == 0 {
		return "", false
	}
	return best, true
}
