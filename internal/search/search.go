// Package search filters the complaint collection by a conjunction of
// optional criteria.
package search

import (
	"strings"
	"time"

	"reklamapp/internal/deadline"
	"reklamapp/internal/domain"
)

// Criteria collects the optional predicates of a search. Zero values mean
// "not applied"; a complaint matches only if it satisfies every supplied
// predicate.
type Criteria struct {
	// Query is the quick search: a case-insensitive substring of either
	// the complaint number or the customer name.
	Query string

	// Substring predicates, case-insensitive.
	ID       string
	Customer string
	Product  string

	// Exact-match predicates.
	Brand  string
	Status string

	// Inclusive start-date range. An unparsable bound is ignored, but a
	// record without a parsable start date never matches a supplied range.
	FromDate string
	ToDate   string

	OverdueOnly bool
	PendingOnly bool
}

// Empty reports whether no predicate is supplied.
func (cr Criteria) Empty() bool {
	return cr == Criteria{}
}

// Filter returns the complaints matching the criteria, in collection order.
func Filter(entries []domain.Entry, cr Criteria, today time.Time) []domain.Entry {
	var matched []domain.Entry
	for _, e := range entries {
		if Matches(e.ID, e.Complaint, cr, today) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Matches reports whether a single complaint satisfies the criteria.
func Matches(id string, c *domain.Complaint, cr Criteria, today time.Time) bool {
	if cr.Query != "" {
		q := strings.ToLower(cr.Query)
		if !strings.Contains(strings.ToLower(id), q) &&
			!strings.Contains(strings.ToLower(c.Customer), q) {
			return false
		}
	}
	if !containsFold(id, cr.ID) {
		return false
	}
	if !containsFold(c.Customer, cr.Customer) {
		return false
	}
	if !containsFold(c.ProductName, cr.Product) {
		return false
	}
	if cr.Brand != "" && c.Brand != cr.Brand {
		return false
	}
	if cr.Status != "" && c.Status != cr.Status {
		return false
	}
	if cr.OverdueOnly && !deadline.IsOverdue(c, today) {
		return false
	}
	if cr.PendingOnly && !deadline.ManufacturerPending(c) {
		return false
	}
	if cr.FromDate != "" || cr.ToDate != "" {
		start, ok := deadline.ParseDate(c.StartDate)
		if !ok {
			return false
		}
		if from, ok := deadline.ParseDate(cr.FromDate); ok && start.Before(from) {
			return false
		}
		if to, ok := deadline.ParseDate(cr.ToDate); ok && start.After(to) {
			return false
		}
	}
	return true
}

func containsFold(value, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(sub))
}
