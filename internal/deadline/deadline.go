// Package deadline computes the handling and manufacturer deadlines of a
// complaint. Every function takes the reference day explicitly so callers
// and tests control "today".
package deadline

import (
	"fmt"
	"strings"
	"time"

	"reklamapp/internal/domain"
)

// DateLayout is the calendar date format used throughout the records.
const DateLayout = "2006-01-02"

// Unavailable is the rendered value when a deadline cannot be computed.
const Unavailable = "N/A"

// ParseDate parses a record date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today returns the current calendar day at midnight UTC.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from one date to another, ignoring
// the time of day and time zone of both.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// DaysLeft reports how many days remain of the complaint's own handling
// deadline. Negative means the deadline passed that many days ago. The
// second result is false when the start date or the day count is missing or
// unparsable.
func DaysLeft(c *domain.Complaint, today time.Time) (int, bool) {
	start, ok := ParseDate(c.StartDate)
	if !ok {
		return 0, false
	}
	days, ok := c.DeadlineDays.Int()
	if !ok {
		return 0, false
	}
	return days - daysBetween(start, today), true
}

// IsOverdue reports whether an open complaint's own deadline has passed.
// Closed complaints are never overdue.
func IsOverdue(c *domain.Complaint, today time.Time) bool {
	if c.Status != domain.StatusOpen {
		return false
	}
	left, ok := DaysLeft(c, today)
	return ok && left < 0
}

// ManufacturerDaysLeft reports how many days remain until the manufacturer's
// answer is due.
func ManufacturerDaysLeft(c *domain.Complaint, today time.Time) (int, bool) {
	sent, ok := ParseDate(c.ManufacturerSentDate)
	if !ok {
		return 0, false
	}
	days, ok := c.ManufacturerDeadlineDays.Int()
	if !ok {
		return 0, false
	}
	return days - daysBetween(sent, today), true
}

// ManufacturerOverdue reports whether the complaint was sent to the
// manufacturer, no response arrived, and the response deadline has passed.
// The complaint's own status does not matter here.
func ManufacturerOverdue(c *domain.Complaint, today time.Time) bool {
	if c.ManufacturerResponse != "" {
		return false
	}
	left, ok := ManufacturerDaysLeft(c, today)
	return ok && left < 0
}

// ManufacturerPending reports whether an open complaint is waiting for a
// manufacturer response: it was sent and nothing came back yet. The deadline
// does not matter, only that the response is outstanding.
func ManufacturerPending(c *domain.Complaint) bool {
	return strings.TrimSpace(c.ManufacturerSentDate) != "" &&
		c.ManufacturerResponse == "" &&
		c.Status == domain.StatusOpen
}

// DueDate returns the complaint's own deadline date (start date + deadline
// days).
func DueDate(c *domain.Complaint) (time.Time, bool) {
	start, ok := ParseDate(c.StartDate)
	if !ok {
		return time.Time{}, false
	}
	days, ok := c.DeadlineDays.Int()
	if !ok {
		return time.Time{}, false
	}
	return start.AddDate(0, 0, days), true
}

// ManufacturerDueDate returns the date the manufacturer's response is due.
func ManufacturerDueDate(c *domain.Complaint) (time.Time, bool) {
	sent, ok := ParseDate(c.ManufacturerSentDate)
	if !ok {
		return time.Time{}, false
	}
	days, ok := c.ManufacturerDeadlineDays.Int()
	if !ok {
		return time.Time{}, false
	}
	return sent.AddDate(0, 0, days), true
}

// FormatDaysLeft renders the remaining days the way the lists and exports
// display them: "12 nap", "Lejárt (5 napja)" or "N/A". Closed complaints
// always render as "N/A".
func FormatDaysLeft(c *domain.Complaint, today time.Time) string {
	if c.Status == domain.StatusClosed {
		return Unavailable
	}
	left, ok := DaysLeft(c, today)
	if !ok {
		return Unavailable
	}
	if left < 0 {
		return fmt.Sprintf("Lejárt (%d napja)", -left)
	}
	return fmt.Sprintf("%d nap", left)
}
