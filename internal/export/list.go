package export

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"reklamapp/internal/deadline"
	"reklamapp/internal/domain"
)

var listHTMLTemplate = template.Must(template.New("list").Parse(`<!DOCTYPE html>
<html lang="hu">
<head>
<meta charset="utf-8">
<title>Reklamációk listája</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
h1 { color: #306998; }
table { border-collapse: collapse; width: 100%; margin-top: 20px; }
th { background-color: #306998; color: white; text-align: left; padding: 8px; }
td { border: 1px solid #ddd; padding: 8px; }
tr:nth-child(even) { background-color: #f2f2f2; }
.overdue { color: red; }
.warning { color: orange; }
.ok { color: green; }
</style>
</head>
<body>
<h1>Reklamációk listája</h1>
<p>Exportálás időpontja: {{.Generated}}</p>
<table>
<tr>
<th>Reklamáció szám</th>
<th>Vásárló neve</th>
<th>Termék neve</th>
<th>Márka</th>
<th>Státusz</th>
<th>Kezdési dátum</th>
<th>Határidő</th>
</tr>
{{range .Rows}}<tr>
<td>{{.ID}}</td>
<td>{{.Customer}}</td>
<td>{{.Product}}</td>
<td>{{.Brand}}</td>
<td>{{.Status}}</td>
<td>{{.StartDate}}</td>
{{if .ShowDays}}<td class="{{.Class}}">{{.DeadlineDate}} ({{.DaysLeft}} nap)</td>
{{else}}<td>{{.DeadlineDate}}</td>
{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

type listHTMLRow struct {
	listRow
	ShowDays bool
}

// WriteListHTML writes the complaint list as a standalone HTML page with the
// deadline cell coloured by urgency. Closed complaints show the due date
// without colouring.
func WriteListHTML(w io.Writer, entries []domain.Entry, today, generated time.Time) error {
	rows := make([]listHTMLRow, 0, len(entries))
	for _, row := range buildRows(entries, today) {
		rows = append(rows, listHTMLRow{
			listRow:  row,
			ShowDays: row.Class != "" && row.Status == domain.StatusOpen,
		})
	}
	data := struct {
		Generated string
		Rows      []listHTMLRow
	}{
		Generated: generated.Format(timestampLayout),
		Rows:      rows,
	}
	if err := listHTMLTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html list: %w", err)
	}
	return nil
}

// WriteListText writes the complaint list as a plain-text report, one block
// per complaint.
func WriteListText(w io.Writer, entries []domain.Entry, today, generated time.Time) error {
	var b strings.Builder
	b.WriteString("REKLAMÁCIÓK LISTÁJA\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Exportálás időpontja: %s\n\n", generated.Format(timestampLayout))

	for _, e := range entries {
		c := e.Complaint
		fmt.Fprintf(&b, "Reklamáció szám: %s\n", e.ID)
		b.WriteString(strings.Repeat("-", 30) + "\n")
		fmt.Fprintf(&b, "Vásárló neve: %s\n", c.Customer)
		fmt.Fprintf(&b, "Lakcím: %s\n", c.CustomerAddress)
		fmt.Fprintf(&b, "Termék neve: %s\n", c.ProductName)
		fmt.Fprintf(&b, "Márka: %s\n", c.Brand)
		fmt.Fprintf(&b, "Panasz leírás: %s\n", c.Description)
		fmt.Fprintf(&b, "Státusz: %s\n", c.Status)

		if c.StartDate != "" && c.DeadlineDays != "" {
			fmt.Fprintf(&b, "Kezdési dátum: %s\n", c.StartDate)
			fmt.Fprintf(&b, "Határidő (nap): %s\n", c.DeadlineDays)
			if due, ok := deadline.DueDate(c); ok {
				fmt.Fprintf(&b, "Határidő dátum: %s\n", due.Format(deadline.DateLayout))
				if left, ok := deadline.DaysLeft(c, today); ok && c.IsOpen() {
					if left < 0 {
						fmt.Fprintf(&b, "Hátralevő napok: LEJÁRT! (%d napja)\n", -left)
					} else {
						fmt.Fprintf(&b, "Hátralevő napok: %d\n", left)
					}
				}
			}
		}

		if c.ManufacturerResponse != "" {
			fmt.Fprintf(&b, "Gyártói válasz: %s\n", c.ManufacturerResponse)
		} else {
			b.WriteString("Gyártói válasz: Nincs\n")
		}

		if len(c.Photos) > 0 {
			b.WriteString("Csatolt fájlok:\n")
			for _, photo := range c.Photos {
				fmt.Fprintf(&b, "  - %s\n", photo)
			}
		}

		b.WriteString("\n" + strings.Repeat("=", 50) + "\n\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text list: %w", err)
	}
	return nil
}
