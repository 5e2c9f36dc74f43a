// Package assignments holds the assignment lifecycle: search, the
// Pending → Confirmed transition, removal and the temple-dana projection.
//
// The functions on collections are pure. They never modify the slice they are
// given; callers get a new slice and unchanged elements are copied as-is.
package assignments

import (
	"strings"

	"github.com/dalemusser/danahub/internal/domain/models"
)

// Filter returns, in source order, the assignments whose family name, temple
// name or dana name contains query, ignoring case. An empty query matches
// everything. Whitespace in query is significant: " " only matches names
// that contain a space.
func Filter(list []models.Assignment, query string) []models.Assignment {
	out := make([]models.Assignment, 0, len(list))
	if query == "" {
		return append(out, list...)
	}
	q := strings.ToLower(query)
	for _, a := range list {
		if Matches(a, q) {
			out = append(out, a)
		}
	}
	return out
}

// Matches reports whether a matches an already lowercased query.
func Matches(a models.Assignment, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(a.Family.FamilyName), lowerQuery) ||
		strings.Contains(strings.ToLower(a.TempleDana.Temple.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(a.TempleDana.Dana.Name), lowerQuery)
}

// FilterDanas returns the danas whose name or description contains query,
// ignoring case, in source order.
func FilterDanas(list []models.Dana, query string) []models.Dana {
	out := make([]models.Dana, 0, len(list))
	q := strings.ToLower(query)
	for _, d := range list {
		if strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Description), q) {
			out = append(out, d)
		}
	}
	return out
}
