// Package export renders the complaint collection into the downloadable
// formats: CSV, HTML and plain-text lists, plus the per-complaint submission
// and documentation documents.
package export

import (
	"strconv"
	"time"

	"reklamapp/internal/deadline"
	"reklamapp/internal/domain"
)

// timestampLayout is the "generated at" format of every export.
const timestampLayout = "2006-01-02 15:04"

// listRow is one precomputed row of the list exports.
type listRow struct {
	ID           string
	Customer     string
	Address      string
	Product      string
	Brand        string
	Description  string
	Status       string
	Response     string
	StartDate    string
	DeadlineDays string
	DeadlineDate string
	DaysLeft     int
	DaysKnown    bool
	Class        string
	Photos       []string
}

// buildRow computes the deadline columns of one complaint. Unlike the list
// screens, the exports compute the remaining days regardless of status; only
// the colour class is suppressed for closed records.
func buildRow(id string, c *domain.Complaint, today time.Time) listRow {
	row := listRow{
		ID:           id,
		Customer:     c.Customer,
		Address:      c.CustomerAddress,
		Product:      c.ProductName,
		Brand:        c.Brand,
		Description:  c.Description,
		Status:       c.Status,
		Response:     c.ManufacturerResponse,
		StartDate:    c.StartDate,
		DeadlineDays: string(c.DeadlineDays),
		DeadlineDate: deadline.Unavailable,
		Photos:       c.Photos,
	}
	if due, ok := deadline.DueDate(c); ok {
		row.DeadlineDate = due.Format(deadline.DateLayout)
	}
	if left, ok := deadline.DaysLeft(c, today); ok {
		row.DaysLeft = left
		row.DaysKnown = true
		switch {
		case left < 0:
			row.Class = "overdue"
		case left <= 5:
			row.Class = "warning"
		default:
			row.Class = "ok"
		}
	}
	return row
}

func buildRows(entries []domain.Entry, today time.Time) []listRow {
	rows := make([]listRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, buildRow(e.ID, e.Complaint, today))
	}
	return rows
}

func (r listRow) daysLeftCell() string {
	if !r.DaysKnown {
		return deadline.Unavailable
	}
	return strconv.Itoa(r.DaysLeft)
}

// FilterOpen keeps the open complaints of a snapshot, preserving order.
func FilterOpen(entries []domain.Entry) []domain.Entry {
	var open []domain.Entry
	for _, e := range entries {
		if e.Complaint.IsOpen() {
			open = append(open, e)
		}
	}
	return open
}
