package export

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"reklamapp/internal/domain"
)

func yesNo(v bool) string {
	if v {
		return "igen"
	}
	return "nem"
}

func orNincs(s string) string {
	if s == "" {
		return "Nincs"
	}
	return s
}

// WriteSubmissionText writes the plain-text submission document of one
// complaint, suitable for pasting into an official filing.
func WriteSubmissionText(w io.Writer, id string, c *domain.Complaint) error {
	var b strings.Builder
	b.WriteString("=== Beadvány (Szöveges) ===\n")
	fmt.Fprintf(&b, "Reklamáció száma: %s\n", id)
	fmt.Fprintf(&b, "Vásárló neve: %s\n", c.Customer)
	fmt.Fprintf(&b, "Lakcím: %s\n", c.CustomerAddress)
	fmt.Fprintf(&b, "Termék neve: %s\n", c.ProductName)
	fmt.Fprintf(&b, "Panasz: %s\n", c.Description)
	fmt.Fprintf(&b, "Márka: %s\n", c.Brand)
	fmt.Fprintf(&b, "Státusz: %s\n", c.Status)

	if c.Inspection != nil {
		b.WriteString("Ellenőrzési adatok (Elitestrom):\n")
		fmt.Fprintf(&b, "  szemle: %s\n", yesNo(c.Inspection.Surveyed))
		fmt.Fprintf(&b, "  műhelybe_hozva: %s\n", yesNo(c.Inspection.BroughtToWorkshop))
		fmt.Fprintf(&b, "  megjavítva: %s\n", yesNo(c.Inspection.Repaired))
		fmt.Fprintf(&b, "  vissza_vitt: %s\n", yesNo(c.Inspection.ReturnedToOwner))
	} else {
		var imp domain.ImportDetails
		if c.ImportInfo != nil {
			imp = *c.ImportInfo
		}
		b.WriteString("Import számla információ:\n")
		fmt.Fprintf(&b, "  Számlaszám: %s\n", orNincs(imp.InvoiceNumber))
		fmt.Fprintf(&b, "  Dátum: %s\n", orNincs(imp.InvoiceDate))
		fmt.Fprintf(&b, "  Iroda megküldte: %s\n", yesNo(imp.OfficeProcessed))
	}

	if len(c.Photos) > 0 {
		b.WriteString("Csatolt fájlok:\n")
		for _, p := range c.Photos {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
	} else {
		b.WriteString("Csatolt fájlok: Nincsenek\n")
	}

	if c.ManufacturerResponse != "" {
		fmt.Fprintf(&b, "Gyártó válasza: %s\n", c.ManufacturerResponse)
	} else {
		b.WriteString("Gyártó válasza: Nincs rögzítve\n")
	}

	if len(c.AdditionalInfo) > 0 {
		b.WriteString("Utólagos megjegyzések:\n")
		for _, note := range c.AdditionalInfo {
			fmt.Fprintf(&b, "  - %s\n", note)
		}
	} else {
		b.WriteString("Utólagos megjegyzések: Nincsenek\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text submission: %w", err)
	}
	return nil
}

var submissionHTMLTemplate = template.Must(template.New("submission").Funcs(template.FuncMap{
	"yesNo":   yesNo,
	"orNincs": orNincs,
}).Parse(`<!DOCTYPE html>
<html lang="hu">
<head>
<meta charset="utf-8">
<title>Beadvány - {{.ID}}</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 900px; margin: 0 auto; padding: 20px; }
h1, h2 { color: #306998; }
img { max-width: 100%; height: auto; margin: 10px 0; border: 1px solid #ddd; }
.info-section { margin-bottom: 20px; padding: 15px; border: 1px solid #ddd; border-radius: 5px; }
</style>
</head>
<body>
<h1>Reklamáció Beadvány</h1>
<div class="info-section">
<p><strong>Reklamáció száma:</strong> {{.ID}}</p>
<p><strong>Vásárló neve:</strong> {{.Complaint.Customer}}</p>
<p><strong>Lakcím:</strong> {{.Complaint.CustomerAddress}}</p>
<p><strong>Termék neve:</strong> {{.Complaint.ProductName}}</p>
<p><strong>Panasz:</strong> {{.Complaint.Description}}</p>
<p><strong>Márka:</strong> {{.Complaint.Brand}}</p>
<p><strong>Státusz:</strong> {{.Complaint.Status}}</p>
</div>
{{if .Complaint.Inspection}}<div class="info-section">
<h2>Ellenőrzési adatok (Elitestrom)</h2>
<ul>
<li>szemle: {{yesNo .Complaint.Inspection.Surveyed}}</li>
<li>műhelybe_hozva: {{yesNo .Complaint.Inspection.BroughtToWorkshop}}</li>
<li>megjavítva: {{yesNo .Complaint.Inspection.Repaired}}</li>
<li>vissza_vitt: {{yesNo .Complaint.Inspection.ReturnedToOwner}}</li>
</ul>
</div>
{{else}}<div class="info-section">
<h2>Import számla információ</h2>
{{with .Complaint.ImportInfo}}<p><strong>Számlaszám:</strong> {{orNincs .InvoiceNumber}}</p>
<p><strong>Dátum:</strong> {{orNincs .InvoiceDate}}</p>
<p><strong>Iroda megküldte:</strong> {{yesNo .OfficeProcessed}}</p>
{{end}}</div>
{{end}}{{if .Complaint.Photos}}<div class="info-section">
<h2>Csatolt fájlok</h2>
{{range .Complaint.Photos}}<div><img src="{{$.PhotoBase}}/{{.}}" alt="Média" style="max-width:600px;"/></div>
<p><small>Fájl: {{.}}</small></p>
{{end}}</div>
{{else}}<div class="info-section">
<p>Nincs feltöltött fájl</p>
</div>
{{end}}<div class="info-section">
{{if .Complaint.ManufacturerResponse}}<p><strong>Gyártó válasza:</strong> {{.Complaint.ManufacturerResponse}}</p>
{{else}}<p><strong>Gyártó válasza:</strong> Nincs rögzítve</p>
{{end}}</div>
{{if .Complaint.AdditionalInfo}}<div class="info-section">
<h2>Utólagos megjegyzések</h2>
<ul>
{{range .Complaint.AdditionalInfo}}<li>{{.}}</li>
{{end}}</ul>
</div>
{{else}}<div class="info-section">
<p>Nincsenek utólagos megjegyzések</p>
</div>
{{end}}<div class="info-section" style="font-size: 0.8em; color: #666; text-align: center;">
<p>Generálva: {{.Generated}}</p>
</div>
</body>
</html>
`))

// WriteSubmissionHTML writes the HTML submission document of one complaint.
// photoBase is the URL prefix under which the attachment files are served.
func WriteSubmissionHTML(w io.Writer, id string, c *domain.Complaint, photoBase string, generated time.Time) error {
	data := struct {
		ID        string
		Complaint *domain.Complaint
		PhotoBase string
		Generated string
	}{
		ID:        id,
		Complaint: c,
		PhotoBase: strings.TrimSuffix(photoBase, "/"),
		Generated: generated.Format(timestampLayout),
	}
	if err := submissionHTMLTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html submission: %w", err)
	}
	return nil
}
