package search

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

func testEntries() []domain.Entry {
	kiss := domain.New("Tempur")
	kiss.Customer = "Kiss Béla"
	kiss.ProductName = "Memóriahabos matrac"
	kiss.StartDate = "2024-01-10"
	kiss.DeadlineDays = "30"

	nagy := domain.New("Elitestrom")
	nagy.Customer = "Nagy Anna"
	nagy.ProductName = "Rugós ágybetét"
	nagy.StartDate = "2024-03-01"
	nagy.DeadlineDays = "30"
	nagy.ManufacturerSentDate = "2024-03-05"

	toth := domain.New("Tempur")
	toth.Customer = "Tóth Pál"
	toth.ProductName = "Párna"
	toth.Status = domain.StatusClosed
	toth.StartDate = "2024-02-15"
	toth.DeadlineDays = "30"

	undated := domain.New("Sealy")
	undated.Customer = "Szabó Éva"
	undated.ProductName = "Matrac"

	return []domain.Entry{
		{ID: "R-101", Complaint: kiss},
		{ID: "R-102", Complaint: nagy},
		{ID: "R-203", Complaint: toth},
		{ID: "R-204", Complaint: undated},
	}
}

func ids(entries []domain.Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterEmptyCriteriaReturnsAllInOrder(t *testing.T) {
	got := Filter(testEntries(), Criteria{}, day("2024-03-10"))
	assert.Equal(t, []string{"R-101", "R-102", "R-203", "R-204"}, ids(got))
}

func TestQuickSearchMatchesIDOrCustomer(t *testing.T) {
	today := day("2024-03-10")

	got := Filter(testEntries(), Criteria{Query: "r-1"}, today)
	assert.Equal(t, []string{"R-101", "R-102"}, ids(got))

	got = Filter(testEntries(), Criteria{Query: "anna"}, today)
	assert.Equal(t, []string{"R-102"}, ids(got))

	got = Filter(testEntries(), Criteria{Query: "párna"}, today)
	assert.Empty(t, got)
}

func TestSubstringPredicatesAreCaseInsensitive(t *testing.T) {
	today := day("2024-03-10")

	got := Filter(testEntries(), Criteria{Customer: "KISS"}, today)
	assert.Equal(t, []string{"R-101"}, ids(got))

	got = Filter(testEntries(), Criteria{Product: "matrac"}, today)
	assert.Equal(t, []string{"R-101", "R-204"}, ids(got))

	got = Filter(testEntries(), Criteria{ID: "20"}, today)
	assert.Equal(t, []string{"R-203", "R-204"}, ids(got))
}

func TestExactPredicates(t *testing.T) {
	today := day("2024-03-10")

	got := Filter(testEntries(), Criteria{Brand: "Tempur"}, today)
	assert.Equal(t, []string{"R-101", "R-203"}, ids(got))

	// Brand is exact, not substring.
	got = Filter(testEntries(), Criteria{Brand: "Temp"}, today)
	assert.Empty(t, got)

	got = Filter(testEntries(), Criteria{Status: domain.StatusClosed}, today)
	assert.Equal(t, []string{"R-203"}, ids(got))
}

func TestDateRange(t *testing.T) {
	today := day("2024-03-10")

	// Inclusive bounds; the record without a start date is excluded as
	// soon as any range bound is supplied.
	got := Filter(testEntries(), Criteria{FromDate: "2024-02-15", ToDate: "2024-03-01"}, today)
	assert.Equal(t, []string{"R-102", "R-203"}, ids(got))

	got = Filter(testEntries(), Criteria{FromDate: "2024-02-01"}, today)
	assert.Equal(t, []string{"R-102", "R-203"}, ids(got))

	// An unparsable bound is ignored, but the range still excludes the
	// undated record.
	got = Filter(testEntries(), Criteria{FromDate: "nem dátum"}, today)
	assert.Equal(t, []string{"R-101", "R-102", "R-203"}, ids(got))
}

func TestOverdueAndPendingOnly(t *testing.T) {
	today := day("2024-03-10")

	got := Filter(testEntries(), Criteria{OverdueOnly: true}, today)
	assert.Equal(t, []string{"R-101"}, ids(got))

	got = Filter(testEntries(), Criteria{PendingOnly: true}, today)
	assert.Equal(t, []string{"R-102"}, ids(got))
}

func TestCriteriaConjunction(t *testing.T) {
	today := day("2024-03-10")

	got := Filter(testEntries(), Criteria{
		Brand:    "Tempur",
		Status:   domain.StatusOpen,
		Customer: "kiss",
	}, today)
	require.Len(t, got, 1)
	assert.Equal(t, "R-101", got[0].ID)
}

func TestCriteriaEmpty(t *testing.T) {
	assert.True(t, Criteria{}.Empty())
	assert.False(t, Criteria{Brand: "Tempur"}.Empty())
	assert.False(t, Criteria{OverdueOnly: true}.Empty())
}
