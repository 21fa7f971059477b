package harvest

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/heartland-harvester/internal/evidence"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Export writes the evidence list to path in the given format. An empty list
// still produces a file with the header row.
func Export(path, format string, items []evidence.Evidence) error {
	switch format {
	case FormatCSV:
		return ExportCSV(path, items)
	case FormatXLSX:
		return ExportXLSX(path, items)
	default:
		return eris.Errorf("export: unknown format %q", format)
	}
}

// ExportCSV writes the evidence list as a UTF-8 CSV file with the standard
// header row.
func ExportCSV(path string, items []evidence.Evidence) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(evidence.Columns); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for _, ev := range items {
		if err := w.Write(ev.Row()); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}
	return nil
}

// ExportXLSX writes the evidence list as a single-sheet XLSX workbook with
// the same columns as the CSV export.
func ExportXLSX(path string, items []evidence.Evidence) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range evidence.Columns {
		header.AddCell().Value = col
	}

	for _, ev := range items {
		row := sheet.AddRow()
		for _, field := range ev.Row() {
			row.AddCell().Value = field
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}
