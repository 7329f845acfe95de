package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayCountInt(t *testing.T) {
	tests := []struct {
		name  string
		value DayCount
		want  int
		ok    bool
	}{
		{"plain number", "30", 30, true},
		{"zero", "0", 0, true},
		{"surrounding spaces", " 15 ", 15, true},
		{"empty", "", 0, false},
		{"not a number", "harminc", 0, false},
		{"negative", "-3", 0, false},
		{"fractional", "2.5", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.value.Int()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayCountUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var payload struct {
		Days DayCount `json:"deadline_days"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"deadline_days": "30"}`), &payload))
	assert.Equal(t, DayCount("30"), payload.Days)

	require.NoError(t, json.Unmarshal([]byte(`{"deadline_days": 45}`), &payload))
	assert.Equal(t, DayCount("45"), payload.Days)

	payload.Days = ""
	require.NoError(t, json.Unmarshal([]byte(`{"deadline_days": null}`), &payload))
	assert.Equal(t, DayCount(""), payload.Days)

	assert.Error(t, json.Unmarshal([]byte(`{"deadline_days": [1]}`), &payload))
}

func TestNewSelectsVariantByBrand(t *testing.T) {
	elitestrom := New("Elitestrom")
	require.NotNil(t, elitestrom.Inspection)
	assert.Nil(t, elitestrom.ImportInfo)
	assert.Equal(t, StatusOpen, elitestrom.Status)

	other := New("Tempur")
	require.NotNil(t, other.ImportInfo)
	assert.Nil(t, other.Inspection)
}

func TestSetBrandSwapsVariantAndDiscardsOldData(t *testing.T) {
	c := New("Tempur")
	c.ImportInfo.InvoiceNumber = "SZ-123"

	c.SetBrand("Elitestrom")
	require.NotNil(t, c.Inspection)
	assert.Nil(t, c.ImportInfo)

	c.SetBrand("Tempur")
	require.NotNil(t, c.ImportInfo)
	assert.Empty(t, c.ImportInfo.InvoiceNumber)
}

func TestSetBrandSameFamilyKeepsVariantData(t *testing.T) {
	c := New("Tempur")
	c.ImportInfo.InvoiceNumber = "SZ-123"

	c.SetBrand("Hollandia")
	require.NotNil(t, c.ImportInfo)
	assert.Equal(t, "SZ-123", c.ImportInfo.InvoiceNumber)
}

func TestComplaintUnmarshalAppliesDefaults(t *testing.T) {
	var c Complaint
	require.NoError(t, json.Unmarshal([]byte(`{"customer": "Kiss Béla", "brand": "Sealy"}`), &c))

	assert.Equal(t, StatusOpen, c.Status)
	assert.NotNil(t, c.Photos)
	assert.NotNil(t, c.AdditionalInfo)
	require.NotNil(t, c.ImportInfo)
	assert.Nil(t, c.Inspection)
}

func TestComplaintCloneIsIndependent(t *testing.T) {
	c := New("Elitestrom")
	c.Photos = append(c.Photos, "R-1_20240101_101010.jpg")
	c.Inspection.Surveyed = true

	dup := c.Clone()
	dup.Photos[0] = "changed"
	dup.Inspection.Surveyed = false
	dup.AddNote("megjegyzés")

	assert.Equal(t, "R-1_20240101_101010.jpg", c.Photos[0])
	assert.True(t, c.Inspection.Surveyed)
	assert.Empty(t, c.AdditionalInfo)
}

func TestBrandOrUnknown(t *testing.T) {
	c := &Complaint{}
	assert.Equal(t, "Ismeretlen", c.BrandOrUnknown())
	c.Brand = "Reflex"
	assert.Equal(t, "Reflex", c.BrandOrUnknown())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Nyitott", StatusLabel(StatusOpen))
	assert.Equal(t, "Lezárt", StatusLabel(StatusClosed))
	assert.Equal(t, "egyéb", StatusLabel("egyéb"))
}
