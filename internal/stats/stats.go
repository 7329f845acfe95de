// Package stats aggregates collection-wide numbers for the dashboard, the
// month deadline calendar and the startup warnings.
package stats

import (
	"fmt"
	"time"

	"reklamapp/internal/deadline"
	"reklamapp/internal/domain"
)

// BrandCount is one bucket of the brand histogram.
type BrandCount struct {
	Brand string
	Count int
}

// RecentComplaint is one row of the dashboard's recent list.
type RecentComplaint struct {
	ID       string
	Customer string
	Brand    string
	Status   string
}

// Stats holds the dashboard numbers.
type Stats struct {
	Total               int
	Open                int
	Closed              int
	Overdue             int
	PendingManufacturer int
	// Brands lists the histogram in first-seen order so the dashboard is
	// stable across reloads.
	Brands []BrandCount
	// Recent holds the first five complaints in collection order.
	Recent []RecentComplaint
}

// Collect computes the dashboard statistics over the given snapshot.
func Collect(entries []domain.Entry, today time.Time) Stats {
	st := Stats{Total: len(entries)}

	counts := make(map[string]int)
	var seen []string
	for _, e := range entries {
		c := e.Complaint
		if c.IsOpen() {
			st.Open++
		} else {
			st.Closed++
		}
		if deadline.IsOverdue(c, today) {
			st.Overdue++
		}
		if deadline.ManufacturerPending(c) {
			st.PendingManufacturer++
		}

		brand := c.BrandOrUnknown()
		if _, ok := counts[brand]; !ok {
			seen = append(seen, brand)
		}
		counts[brand]++

		if len(st.Recent) < 5 {
			st.Recent = append(st.Recent, RecentComplaint{
				ID:       e.ID,
				Customer: c.Customer,
				Brand:    c.Brand,
				Status:   c.Status,
			})
		}
	}

	for _, brand := range seen {
		st.Brands = append(st.Brands, BrandCount{Brand: brand, Count: counts[brand]})
	}
	return st
}

// DeadlineEntry is one due date on the month calendar.
type DeadlineEntry struct {
	ID          string
	Description string
}

// MonthDeadlines lists the due dates of open complaints falling in the given
// month, keyed by day of month. A complaint may contribute both its own and
// its manufacturer due date. An unanswered manufacturer deadline counts even
// though the response may arrive later.
func MonthDeadlines(entries []domain.Entry, year int, month time.Month) map[int][]DeadlineEntry {
	result := make(map[int][]DeadlineEntry)
	for _, e := range entries {
		c := e.Complaint
		if !c.IsOpen() {
			continue
		}
		if due, ok := deadline.DueDate(c); ok && due.Year() == year && due.Month() == month {
			result[due.Day()] = append(result[due.Day()], DeadlineEntry{
				ID:          e.ID,
				Description: "Saját határidő: " + c.Customer,
			})
		}
		if due, ok := deadline.ManufacturerDueDate(c); ok && due.Year() == year && due.Month() == month {
			result[due.Day()] = append(result[due.Day()], DeadlineEntry{
				ID:          e.ID,
				Description: "Gyártói határidő: " + c.Brand,
			})
		}
	}
	return result
}

// Warnings collects the deadline warnings shown at startup and on the
// dashboard: own deadlines within five days (or already passed) and expired
// unanswered manufacturer deadlines.
func Warnings(entries []domain.Entry, today time.Time) []string {
	var warnings []string
	for _, e := range entries {
		c := e.Complaint
		if left, ok := deadline.DaysLeft(c, today); ok && left <= 5 {
			warnings = append(warnings,
				fmt.Sprintf("[Saját határidő] %s lejár %d napon belül!", e.ID, left))
		}
		if c.ManufacturerResponse == "" {
			if left, ok := deadline.ManufacturerDaysLeft(c, today); ok && left < 0 {
				warnings = append(warnings,
					fmt.Sprintf("[Gyártói válasz késik] %s határideje %d nappal ezelőtt lejárt!", e.ID, -left))
			}
		}
	}
	return warnings
}

// MonthGrid returns the weeks of a month as rows of seven day numbers with
// zero for the days that belong to the neighbouring months. Weeks start on
// Monday.
func MonthGrid(year int, month time.Month) [][7]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7 // Monday = 0

	var weeks [][7]int
	var week [7]int
	col := offset
	for day := 1; day <= daysInMonth; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
