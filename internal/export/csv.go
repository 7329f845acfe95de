package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"reklamapp/internal/domain"
)

var csvHeader = []string{
	"Reklamáció szám", "Vásárló neve", "Lakcím", "Termék neve",
	"Márka", "Panasz leírás", "Státusz", "Gyártói válasz",
	"Kezdési dátum", "Határidő (nap)", "Határidő dátum", "Hátralevő napok",
}

// WriteCSV writes the complaint list as a semicolon-delimited CSV, one row
// per complaint in collection order.
func WriteCSV(w io.Writer, entries []domain.Entry, today time.Time) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range buildRows(entries, today) {
		record := []string{
			row.ID,
			row.Customer,
			row.Address,
			row.Product,
			row.Brand,
			row.Description,
			row.Status,
			row.Response,
			row.StartDate,
			row.DeadlineDays,
			row.DeadlineDate,
			row.daysLeftCell(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
