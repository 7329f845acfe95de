package server

import (
	"errors"
	"net/http"
	"strings"

	"reklamapp/internal/deadline"
	"reklamapp/internal/domain"
	"reklamapp/internal/repository"
	"reklamapp/internal/search"

	"go.uber.org/zap"
)

// complaintRow is one row of the list screens with the deadline column
// precomputed.
type complaintRow struct {
	ID        string
	Complaint *domain.Complaint
	DaysLeft  string
	RowClass  string // overdue, warning, ok or empty
}

func buildComplaintRows(entries []domain.Entry) []complaintRow {
	today := deadline.Today()
	rows := make([]complaintRow, 0, len(entries))
	for _, e := range entries {
		row := complaintRow{
			ID:        e.ID,
			Complaint: e.Complaint,
			DaysLeft:  deadline.FormatDaysLeft(e.Complaint, today),
		}
		if e.Complaint.IsOpen() {
			if left, ok := deadline.DaysLeft(e.Complaint, today); ok {
				switch {
				case left < 0:
					row.RowClass = "overdue"
				case left <= 5:
					row.RowClass = "warning"
				default:
					row.RowClass = "ok"
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// handleComplaintsList renders the complaint list, optionally narrowed by
// the quick search box (complaint number or customer name).
func (s *Server) handleComplaintsList(w http.ResponseWriter, r *http.Request) {
	entries := s.store.Snapshot()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query != "" {
		entries = search.Filter(entries, search.Criteria{Query: query}, deadline.Today())
	}

	data := s.newPageData(r, "Reklamációk")
	data.Data = map[string]interface{}{
		"Rows":  buildComplaintRows(entries),
		"Query": query,
		"Total": s.store.Len(),
	}
	s.render(w, r, "pages/complaints/list.html", data)
}

// handleNewComplaintPage renders the new complaint form
func (s *Server) handleNewComplaintPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Új reklamáció")
	data.Data = map[string]interface{}{
		"Brands":    domain.BrandOptions,
		"StartDate": deadline.Today().Format(deadline.DateLayout),
	}
	s.render(w, r, "pages/complaints/new.html", data)
}

// handleCreateComplaint processes the new complaint form
func (s *Server) handleCreateComplaint(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	id := strings.TrimSpace(r.FormValue("id"))
	customer := strings.TrimSpace(r.FormValue("customer"))
	product := strings.TrimSpace(r.FormValue("product_name"))
	brand := strings.TrimSpace(r.FormValue("brand"))

	renderError := func(message string) {
		data := s.newPageData(r, "Új reklamáció")
		data.Flash = &FlashMessage{Type: "error", Message: message}
		data.Data = map[string]interface{}{
			"Brands":    domain.BrandOptions,
			"StartDate": deadline.Today().Format(deadline.DateLayout),
			"Form":      r.Form,
		}
		s.render(w, r, "pages/complaints/new.html", data)
	}

	if id == "" || customer == "" || product == "" || brand == "" {
		renderError("A reklamáció száma, a vásárló, a termék és a márka megadása kötelező!")
		return
	}

	c := domain.New(brand)
	c.Customer = customer
	c.CustomerAddress = strings.TrimSpace(r.FormValue("customer_address"))
	c.ProductName = product
	c.Description = strings.TrimSpace(r.FormValue("complaint_description"))
	c.StartDate = strings.TrimSpace(r.FormValue("start_date"))
	if c.StartDate == "" {
		c.StartDate = deadline.Today().Format(deadline.DateLayout)
	}
	c.DeadlineDays = domain.DayCount(strings.TrimSpace(r.FormValue("deadline_days")))
	if c.DeadlineDays == "" {
		c.DeadlineDays = "30"
	}
	c.ManufacturerSentDate = strings.TrimSpace(r.FormValue("manufacturer_sent_date"))
	c.ManufacturerDeadlineDays = domain.DayCount(strings.TrimSpace(r.FormValue("manufacturer_deadline_days")))

	if err := s.store.Create(id, c); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			renderError("Ez a reklamációszám már létezik!")
			return
		}
		s.log.Error("create complaint failed", zap.String("id", id), zap.Error(err))
		http.Error(w, "Error saving complaint", http.StatusInternalServerError)
		return
	}

	s.log.Info("complaint created", zap.String("id", id), zap.String("brand", brand))
	http.Redirect(w, r, "/complaints/"+id, http.StatusSeeOther)
}

// handleComplaintDetail renders the detail/edit page of one complaint
func (s *Server) handleComplaintDetail(w http.ResponseWriter, r *http.Request) {
	id := getURLParam(r, "id")
	c, err := s.store.Get(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	today := deadline.Today()
	detail := map[string]interface{}{
		"ID":        id,
		"Complaint": c,
		"Brands":    domain.BrandOptions,
		"DaysLeft":  deadline.FormatDaysLeft(c, today),
		"Overdue":   deadline.IsOverdue(c, today),
		"Pending":   deadline.ManufacturerPending(c),
	}
	if due, ok := deadline.DueDate(c); ok {
		detail["DueDate"] = due.Format(deadline.DateLayout)
	}
	if due, ok := deadline.ManufacturerDueDate(c); ok {
		detail["ManufacturerDueDate"] = due.Format(deadline.DateLayout)
	}

	data := s.newPageData(r, "Reklamáció - "+id)
	data.Data = detail
	s.render(w, r, "pages/complaints/detail.html", data)
}

func formChecked(r *http.Request, name string) bool {
	return r.FormValue(name) != ""
}

// handleUpdateComplaint processes the edit form. Changing the brand swaps
// the variant sub-record, so the variant fields are read after the swap.
func (s *Server) handleUpdateComplaint(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	id := getURLParam(r, "id")
	err := s.store.Update(id, func(c *domain.Complaint) error {
		c.Customer = strings.TrimSpace(r.FormValue("customer"))
		c.CustomerAddress = strings.TrimSpace(r.FormValue("customer_address"))
		c.ProductName = strings.TrimSpace(r.FormValue("product_name"))
		c.Description = strings.TrimSpace(r.FormValue("complaint_description"))
		if status := r.FormValue("status"); status != "" {
			c.Status = status
		}
		c.SetBrand(strings.TrimSpace(r.FormValue("brand")))

		c.StartDate = strings.TrimSpace(r.FormValue("start_date"))
		c.DeadlineDays = domain.DayCount(strings.TrimSpace(r.FormValue("deadline_days")))
		c.ManufacturerSentDate = strings.TrimSpace(r.FormValue("manufacturer_sent_date"))
		c.ManufacturerDeadlineDays = domain.DayCount(strings.TrimSpace(r.FormValue("manufacturer_deadline_days")))
		c.ManufacturerResponse = strings.TrimSpace(r.FormValue("manufacturer_response"))

		c.Workshop.InWorkshop = formChecked(r, "ws_in_workshop")
		c.Workshop.RepairDone = formChecked(r, "ws_repair_done")
		c.Workshop.ReturnedToCustomer = formChecked(r, "ws_returned")

		c.HomeInspection.Scheduled = strings.TrimSpace(r.FormValue("home_scheduled"))
		c.HomeInspection.Done = formChecked(r, "home_done")

		if c.Inspection != nil {
			c.Inspection.Surveyed = formChecked(r, "insp_szemle")
			c.Inspection.BroughtToWorkshop = formChecked(r, "insp_muhelybe")
			c.Inspection.Repaired = formChecked(r, "insp_megjavitva")
			c.Inspection.ReturnedToOwner = formChecked(r, "insp_vissza")
		}
		if c.ImportInfo != nil {
			c.ImportInfo.InvoiceNumber = strings.TrimSpace(r.FormValue("imp_szamlaszam"))
			c.ImportInfo.InvoiceDate = strings.TrimSpace(r.FormValue("imp_datum"))
			c.ImportInfo.OfficeProcessed = formChecked(r, "imp_iroda")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.Error("update complaint failed", zap.String("id", id), zap.Error(err))
		http.Error(w, "Error saving complaint", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/complaints/"+id, http.StatusSeeOther)
}

// handleCloseComplaint marks a complaint as closed
func (s *Server) handleCloseComplaint(w http.ResponseWriter, r *http.Request) {
	id := getURLParam(r, "id")
	err := s.store.Update(id, func(c *domain.Complaint) error {
		c.Status = domain.StatusClosed
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Error saving complaint", http.StatusInternalServerError)
		return
	}

	s.log.Info("complaint closed", zap.String("id", id))
	http.Redirect(w, r, "/complaints/"+id, http.StatusSeeOther)
}

// handleDeleteComplaint removes a complaint together with its attachments
func (s *Server) handleDeleteComplaint(w http.ResponseWriter, r *http.Request) {
	id := getURLParam(r, "id")
	removed, err := s.store.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Error deleting complaint", http.StatusInternalServerError)
		return
	}

	// Attachment files go best-effort; the record removal already won.
	s.attachments.RemoveAll(removed.Photos)

	s.log.Info("complaint deleted", zap.String("id", id))
	http.Redirect(w, r, "/complaints", http.StatusSeeOther)
}

// handleAddNote appends a free-text note to a complaint
func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	id := getURLParam(r, "id")
	note := strings.TrimSpace(r.FormValue("note"))
	if note == "" {
		http.Redirect(w, r, "/complaints/"+id, http.StatusSeeOther)
		return
	}

	err := s.store.Update(id, func(c *domain.Complaint) error {
		c.AddNote(note)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Error saving complaint", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/complaints/"+id, http.StatusSeeOther)
}

// handleSearch renders the advanced search form and its results
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := search.Criteria{
		ID:          strings.TrimSpace(q.Get("id")),
		Customer:    strings.TrimSpace(q.Get("customer")),
		Product:     strings.TrimSpace(q.Get("product")),
		Brand:       strings.TrimSpace(q.Get("brand")),
		Status:      strings.TrimSpace(q.Get("status")),
		FromDate:    strings.TrimSpace(q.Get("from_date")),
		ToDate:      strings.TrimSpace(q.Get("to_date")),
		OverdueOnly: q.Get("overdue_only") != "",
		PendingOnly: q.Get("pending_only") != "",
	}

	result := map[string]interface{}{
		"Criteria": criteria,
		"Brands":   domain.BrandOptions,
		"Searched": !criteria.Empty(),
	}
	if !criteria.Empty() {
		matched := search.Filter(s.store.Snapshot(), criteria, deadline.Today())
		result["Rows"] = buildComplaintRows(matched)
		result["Count"] = len(matched)
	}

	data := s.newPageData(r, "Keresés")
	data.Data = result
	s.render(w, r, "pages/complaints/search.html", data)
}
