package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reklamapp/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func entry(id string, c *domain.Complaint) domain.Entry {
	return domain.Entry{ID: id, Complaint: c}
}

func TestCollect(t *testing.T) {
	today := day("2024-03-10")

	overdue := domain.New("Tempur")
	overdue.Customer = "Kiss Béla"
	overdue.StartDate = "2024-01-01"
	overdue.DeadlineDays = "30"

	pending := domain.New("Sealy")
	pending.Customer = "Nagy Anna"
	pending.StartDate = "2024-03-01"
	pending.DeadlineDays = "30"
	pending.ManufacturerSentDate = "2024-03-05"

	closed := domain.New("Tempur")
	closed.Customer = "Tóth Pál"
	closed.Status = domain.StatusClosed

	noBrand := domain.New("")
	noBrand.Customer = "Szabó Éva"

	st := Collect([]domain.Entry{
		entry("R-1", overdue),
		entry("R-2", pending),
		entry("R-3", closed),
		entry("R-4", noBrand),
	}, today)

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 3, st.Open)
	assert.Equal(t, 1, st.Closed)
	assert.Equal(t, 1, st.Overdue)
	assert.Equal(t, 1, st.PendingManufacturer)

	// First-seen order, missing brand bucketed as Ismeretlen.
	assert.Equal(t, []BrandCount{
		{Brand: "Tempur", Count: 2},
		{Brand: "Sealy", Count: 1},
		{Brand: "Ismeretlen", Count: 1},
	}, st.Brands)

	require.Len(t, st.Recent, 4)
	assert.Equal(t, "R-1", st.Recent[0].ID)
	assert.Equal(t, "Kiss Béla", st.Recent[0].Customer)
}

func TestCollectRecentCapsAtFive(t *testing.T) {
	var entries []domain.Entry
	for _, id := range []string{"R-1", "R-2", "R-3", "R-4", "R-5", "R-6", "R-7"} {
		entries = append(entries, entry(id, domain.New("Tempur")))
	}

	st := Collect(entries, day("2024-03-10"))
	require.Len(t, st.Recent, 5)
	assert.Equal(t, "R-1", st.Recent[0].ID)
	assert.Equal(t, "R-5", st.Recent[4].ID)
}

func TestMonthDeadlines(t *testing.T) {
	own := domain.New("Tempur")
	own.Customer = "Kiss Béla"
	own.StartDate = "2024-03-01"
	own.DeadlineDays = "14" // due 2024-03-15

	both := domain.New("Sealy")
	both.Customer = "Nagy Anna"
	both.StartDate = "2024-03-05"
	both.DeadlineDays = "10" // due 2024-03-15
	both.ManufacturerSentDate = "2024-03-01"
	both.ManufacturerDeadlineDays = "19" // due 2024-03-20

	closed := domain.New("Tempur")
	closed.Status = domain.StatusClosed
	closed.StartDate = "2024-03-01"
	closed.DeadlineDays = "14"

	otherMonth := domain.New("Reflex")
	otherMonth.StartDate = "2024-03-25"
	otherMonth.DeadlineDays = "30" // due in April

	result := MonthDeadlines([]domain.Entry{
		entry("R-1", own),
		entry("R-2", both),
		entry("R-3", closed),
		entry("R-4", otherMonth),
	}, 2024, time.March)

	require.Len(t, result, 2)
	assert.Equal(t, []DeadlineEntry{
		{ID: "R-1", Description: "Saját határidő: Kiss Béla"},
		{ID: "R-2", Description: "Saját határidő: Nagy Anna"},
	}, result[15])
	assert.Equal(t, []DeadlineEntry{
		{ID: "R-2", Description: "Gyártói határidő: Sealy"},
	}, result[20])
}

func TestWarnings(t *testing.T) {
	today := day("2024-03-10")

	soon := domain.New("Tempur")
	soon.StartDate = "2024-02-12"
	soon.DeadlineDays = "30" // 3 days left

	fine := domain.New("Sealy")
	fine.StartDate = "2024-03-01"
	fine.DeadlineDays = "30"

	lateManufacturer := domain.New("Reflex")
	lateManufacturer.StartDate = "2024-03-01"
	lateManufacturer.DeadlineDays = "60"
	lateManufacturer.ManufacturerSentDate = "2024-02-01"
	lateManufacturer.ManufacturerDeadlineDays = "15" // expired 23 days ago

	answered := domain.New("Reflex")
	answered.ManufacturerSentDate = "2024-02-01"
	answered.ManufacturerDeadlineDays = "15"
	answered.ManufacturerResponse = "Cserélik."

	warnings := Warnings([]domain.Entry{
		entry("R-1", soon),
		entry("R-2", fine),
		entry("R-3", lateManufacturer),
		entry("R-4", answered),
	}, today)

	assert.Equal(t, []string{
		"[Saját határidő] R-1 lejár 3 napon belül!",
		"[Gyártói válasz késik] R-3 határideje 23 nappal ezelőtt lejárt!",
	}, warnings)
}

func TestMonthGrid(t *testing.T) {
	// March 2024 starts on a Friday and has 31 days.
	weeks := MonthGrid(2024, time.March)
	require.Len(t, weeks, 5)
	assert.Equal(t, [7]int{0, 0, 0, 0, 1, 2, 3}, weeks[0])
	assert.Equal(t, [7]int{4, 5, 6, 7, 8, 9, 10}, weeks[1])
	assert.Equal(t, [7]int{25, 26, 27, 28, 29, 30, 31}, weeks[4])

	// February 2021 starts on a Monday and fits exactly four weeks.
	weeks = MonthGrid(2021, time.February)
	require.Len(t, weeks, 4)
	assert.Equal(t, [7]int{1, 2, 3, 4, 5, 6, 7}, weeks[0])
	assert.Equal(t, [7]int{22, 23, 24, 25, 26, 27, 28}, weeks[3])
}
