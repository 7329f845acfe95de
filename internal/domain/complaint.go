// Package domain defines core business entities
package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// BrandOptions is the fixed brand list offered by the UI. Free text is still
// accepted when editing, so a record may carry a brand outside this list.
var BrandOptions = []string{
	"Novetex",
	"Tempur",
	"Hollandia",
	"Reflex",
	"Sealy",
	"Elitestrom",
}

// Status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// BrandElitestrom selects the inspection variant sub-record; every other
// brand gets the import-invoice variant.
const BrandElitestrom = "Elitestrom"

// BrandUnknown is the histogram bucket for records without a brand.
const BrandUnknown = "Ismeretlen"

// DayCount is a deadline day count. The persisted document may carry it
// either as a JSON number or as a decimal string (the original records were
// typed into free-text fields); the empty value means "not set".
type DayCount string

// UnmarshalJSON accepts both string and numeric representations.
func (d *DayCount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = DayCount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = DayCount(n.String())
	return nil
}

// Int parses the count as a non-negative whole number. The second result is
// false when the count is missing, not a whole number, or negative.
func (d DayCount) Int() (int, bool) {
	s := strings.TrimSpace(string(d))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// InspectionDetails is the Elitestrom-only variant sub-record tracking the
// on-site inspection workflow. The JSON keys are the original Hungarian
// field names of the persisted document.
type InspectionDetails struct {
	Surveyed          bool `json:"szemle"`
	BroughtToWorkshop bool `json:"műhelybe_hozva"`
	Repaired          bool `json:"megjavítva"`
	ReturnedToOwner   bool `json:"vissza_vitt"`
}

// ImportDetails is the variant sub-record of every non-Elitestrom brand,
// tracking the import invoice paperwork.
type ImportDetails struct {
	InvoiceNumber   string `json:"szamlaszam"`
	InvoiceDate     string `json:"datum"`
	OfficeProcessed bool   `json:"iroda_feldolgozva"`
}

// WorkshopStatus tracks the repair workflow shared by every brand.
type WorkshopStatus struct {
	InWorkshop         bool `json:"in_workshop"`
	RepairDone         bool `json:"repair_done"`
	ReturnedToCustomer bool `json:"returned_to_customer"`
}

// HomeInspection tracks the inspection scheduled at the customer's home.
type HomeInspection struct {
	Scheduled string `json:"scheduled"`
	Done      bool   `json:"done"`
}

// Complaint is one reclamation record. The id (complaint number) is the
// collection key and is not repeated inside the record, matching the
// persisted document layout.
type Complaint struct {
	Customer                 string             `json:"customer"`
	CustomerAddress          string             `json:"customer_address"`
	ProductName              string             `json:"product_name"`
	Brand                    string             `json:"brand"`
	Description              string             `json:"complaint_description"`
	Status                   string             `json:"status"`
	Photos                   []string           `json:"photos"`
	ManufacturerResponse     string             `json:"manufacturer_response"`
	AdditionalInfo           []string           `json:"additional_info"`
	Inspection               *InspectionDetails `json:"inspection,omitempty"`
	ImportInfo               *ImportDetails     `json:"import_info,omitempty"`
	Workshop                 WorkshopStatus     `json:"workshop_status"`
	HomeInspection           HomeInspection     `json:"inspection_at_customer"`
	StartDate                string             `json:"start_date"`
	DeadlineDays             DayCount           `json:"deadline_days"`
	ManufacturerSentDate     string             `json:"manufacturer_sent_date"`
	ManufacturerDeadlineDays DayCount           `json:"manufacturer_deadline_days"`
}

// New creates an open complaint for the given brand with the matching
// variant sub-record already attached.
func New(brand string) *Complaint {
	c := &Complaint{
		Brand:          brand,
		Status:         StatusOpen,
		Photos:         []string{},
		AdditionalInfo: []string{},
	}
	c.normalizeVariant()
	return c
}

// UnmarshalJSON decodes a record permissively: missing fields fall back to
// their defaults here, so consumers never have to handle absence.
func (c *Complaint) UnmarshalJSON(data []byte) error {
	type alias Complaint
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = Complaint(a)
	c.applyDefaults()
	return nil
}

func (c *Complaint) applyDefaults() {
	if c.Status == "" {
		c.Status = StatusOpen
	}
	if c.Photos == nil {
		c.Photos = []string{}
	}
	if c.AdditionalInfo == nil {
		c.AdditionalInfo = []string{}
	}
	c.normalizeVariant()
}

// IsElitestrom reports whether the record belongs to the inspection variant.
func (c *Complaint) IsElitestrom() bool {
	return strings.EqualFold(c.Brand, BrandElitestrom)
}

// IsOpen reports whether the record counts as open. Anything other than the
// exact open status is treated as closed for counting purposes.
func (c *Complaint) IsOpen() bool {
	return c.Status == StatusOpen
}

// SetBrand changes the brand and swaps the variant sub-record when the brand
// family changes. The discarded variant's data is lost, which is the
// documented convert semantics.
func (c *Complaint) SetBrand(brand string) {
	c.Brand = brand
	c.normalizeVariant()
}

// normalizeVariant enforces that exactly one of Inspection / ImportInfo is
// present, chosen by the current brand.
func (c *Complaint) normalizeVariant() {
	if c.IsElitestrom() {
		if c.Inspection == nil {
			c.Inspection = &InspectionDetails{}
		}
		c.ImportInfo = nil
	} else {
		if c.ImportInfo == nil {
			c.ImportInfo = &ImportDetails{}
		}
		c.Inspection = nil
	}
}

// BrandOrUnknown returns the brand or the unknown bucket name.
func (c *Complaint) BrandOrUnknown() string {
	if c.Brand == "" {
		return BrandUnknown
	}
	return c.Brand
}

// AddNote appends a free-text note to the record.
func (c *Complaint) AddNote(note string) {
	c.AdditionalInfo = append(c.AdditionalInfo, note)
}

// Clone returns a deep copy of the record.
func (c *Complaint) Clone() *Complaint {
	dup := *c
	dup.Photos = append([]string(nil), c.Photos...)
	dup.AdditionalInfo = append([]string(nil), c.AdditionalInfo...)
	if c.Inspection != nil {
		insp := *c.Inspection
		dup.Inspection = &insp
	}
	if c.ImportInfo != nil {
		imp := *c.ImportInfo
		dup.ImportInfo = &imp
	}
	return &dup
}

// StatusLabel returns a human-readable label for a complaint status
func StatusLabel(status string) string {
	labels := map[string]string{
		StatusOpen:   "Nyitott",
		StatusClosed: "Lezárt",
	}
	if label, ok := labels[status]; ok {
		return label
	}
	return status
}
