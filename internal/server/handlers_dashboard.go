package server

import (
	"net/http"
	"strconv"
	"time"

	"reklamapp/internal/deadline"
	"reklamapp/internal/stats"
)

var monthNames = []string{
	"Január", "Február", "Március", "Április", "Május", "Június",
	"Július", "Augusztus", "Szeptember", "Október", "November", "December",
}

// handleDashboard renders the statistics dashboard with the month deadline
// calendar.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	today := deadline.Today()

	year := today.Year()
	month := today.Month()
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		year = y
	}
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		month = time.Month(m)
	}

	entries := s.store.Snapshot()

	prev := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	next := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	data := s.newPageData(r, "Statisztika")
	data.Data = map[string]interface{}{
		"Stats":     stats.Collect(entries, today),
		"Warnings":  stats.Warnings(entries, today),
		"Deadlines": stats.MonthDeadlines(entries, year, month),
		"Weeks":     stats.MonthGrid(year, month),
		"Year":      year,
		"Month":     int(month),
		"MonthName": monthNames[month-1],
		"PrevYear":  prev.Year(),
		"PrevMonth": int(prev.Month()),
		"NextYear":  next.Year(),
		"NextMonth": int(next.Month()),
		"Today":     today.Day(),
		"IsCurrent": year == today.Year() && month == today.Month(),
	}
	s.render(w, r, "pages/dashboard/index.html", data)
}
