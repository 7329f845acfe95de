package export

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"reklamapp/internal/deadline"
	"reklamapp/internal/domain"
)

var documentationTemplate = template.Must(template.New("documentation").Funcs(template.FuncMap{
	"yesNo":   yesNo,
	"orNincs": orNincs,
}).Parse(`<!DOCTYPE html>
<html lang="hu">
<head>
<meta charset="utf-8">
<title>Dokumentáció - {{.ID}}</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 900px; margin: 0 auto; padding: 20px; }
h1, h2 { color: #306998; }
table { width: 100%; border-collapse: collapse; margin: 15px 0; }
th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
th { background-color: #306998; color: white; }
tr:nth-child(even) { background-color: #f2f2f2; }
.section { margin-bottom: 30px; padding: 15px; border: 1px solid #ddd; border-radius: 5px; }
.status-ok { color: green; }
.status-warning { color: orange; }
.status-danger { color: red; }
</style>
</head>
<body>
<div class="section">
<h1>Reklamáció Részletes Dokumentáció</h1>
<table>
<tr><th colspan="2">Alapadatok</th></tr>
<tr><td>Reklamáció száma:</td><td><strong>{{.ID}}</strong></td></tr>
<tr><td>Vásárló neve:</td><td>{{.Complaint.Customer}}</td></tr>
<tr><td>Termék neve:</td><td>{{.Complaint.ProductName}}</td></tr>
<tr><td>Panasz:</td><td>{{.Complaint.Description}}</td></tr>
<tr><td>Márka:</td><td>{{.Complaint.Brand}}</td></tr>
<tr><td>Státusz:</td><td class="{{.StatusClass}}">{{.Complaint.Status}}</td></tr>
</table>
</div>
<div class="section">
<h2>Határidők</h2>
<table>
<tr><td>(Saját) Ügyintézés kezdete:</td><td>{{orNincs .Complaint.StartDate}}</td></tr>
<tr><td>(Saját) Határidő (napokban):</td><td>{{orNincs .DeadlineDays}}</td></tr>
{{if .DaysKnown}}<tr><td>Hátralévő napok:</td><td class="{{.DaysClass}}">{{.DaysLeft}}</td></tr>
{{end}}</table>
</div>
<div class="section">
<h2>Gyártói válasz határideje</h2>
<table>
<tr><td>Elküldve:</td><td>{{orNincs .Complaint.ManufacturerSentDate}}</td></tr>
<tr><td>Határidő (nap):</td><td>{{orNincs .ManufacturerDeadlineDays}}</td></tr>
{{if .ManufacturerDaysKnown}}<tr><td>Hátralévő napok:</td><td class="{{.ManufacturerDaysClass}}">{{.ManufacturerDaysLeft}}</td></tr>
{{end}}{{if .Complaint.ManufacturerResponse}}<tr><td>Gyártó válasz:</td><td>{{.Complaint.ManufacturerResponse}}</td></tr>
{{else}}<tr><td>Gyártó válasz:</td><td class="{{.ResponseClass}}">Nincs rögzítve</td></tr>
{{end}}</table>
</div>
<div class="section">
<h2>Műhelyes állapot</h2>
<table>
<tr><td>Behozva a műhelybe:</td><td>{{yesNo .Complaint.Workshop.InWorkshop}}</td></tr>
<tr><td>Megjavítva:</td><td>{{yesNo .Complaint.Workshop.RepairDone}}</td></tr>
<tr><td>Visszaszállítva a vevőhöz:</td><td>{{yesNo .Complaint.Workshop.ReturnedToCustomer}}</td></tr>
</table>
</div>
<div class="section">
<h2>Szemle a vásárló otthonában</h2>
<table>
<tr><td>Tervezett időpont:</td><td>{{orNincs .Complaint.HomeInspection.Scheduled}}</td></tr>
<tr><td>Megtörtént:</td><td>{{yesNo .Complaint.HomeInspection.Done}}</td></tr>
</table>
</div>
<div style="font-size: 0.8em; color: #666; text-align: center; margin-top: 30px;">
<p>Dokumentáció készült: {{.Generated}}</p>
</div>
</body>
</html>
`))

// WriteDocumentationHTML writes the detailed documentation page of one
// complaint: deadlines with urgency colours, the manufacturer section, the
// workshop state and the home inspection.
func WriteDocumentationHTML(w io.Writer, id string, c *domain.Complaint, today, generated time.Time) error {
	data := struct {
		ID                       string
		Complaint                *domain.Complaint
		StatusClass              string
		DeadlineDays             string
		DaysLeft                 int
		DaysKnown                bool
		DaysClass                string
		ManufacturerDeadlineDays string
		ManufacturerDaysLeft     int
		ManufacturerDaysKnown    bool
		ManufacturerDaysClass    string
		ResponseClass            string
		Generated                string
	}{
		ID:                       id,
		Complaint:                c,
		StatusClass:              "status-warning",
		DeadlineDays:             string(c.DeadlineDays),
		ManufacturerDeadlineDays: string(c.ManufacturerDeadlineDays),
		Generated:                generated.Format(timestampLayout),
	}
	if c.Status == domain.StatusClosed {
		data.StatusClass = "status-ok"
	}
	if left, ok := deadline.DaysLeft(c, today); ok {
		data.DaysLeft = left
		data.DaysKnown = true
		switch {
		case left < 0:
			data.DaysClass = "status-danger"
		case left <= 5:
			data.DaysClass = "status-warning"
		default:
			data.DaysClass = "status-ok"
		}
	}
	if left, ok := deadline.ManufacturerDaysLeft(c, today); ok {
		data.ManufacturerDaysLeft = left
		data.ManufacturerDaysKnown = true
		switch {
		case left < 0:
			data.ManufacturerDaysClass = "status-danger"
		case left <= 3:
			data.ManufacturerDaysClass = "status-warning"
		default:
			data.ManufacturerDaysClass = "status-ok"
		}
		if c.ManufacturerResponse == "" && left < 0 {
			data.ResponseClass = "status-danger"
		}
	}
	if err := documentationTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render documentation: %w", err)
	}
	return nil
}
