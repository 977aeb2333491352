// Package report renders the load take-down summary as a console table
// and as an Excel workbook.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"

	"github.com/stralab/goltd/internal/ltderr"
	"github.com/stralab/goltd/internal/takedown"
)

var headers = []string{
	"Column ID", "X", "Y", "Floor", "Type", "Area m²",
	"Permanent Load (kN)", "Imposed Load (kN)",
	"Total Permanent (kN)", "Total Imposed (kN)", "Total SLS (kN)",
}

// WriteTable prints the summary rows as an aligned text table.
func WriteTable(w io.Writer, rows []takedown.Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw)

	prev := ""
	for _, r := range rows {
		id := r.ColumnID
		x := fmt.Sprintf("%.3f", r.X)
		y := fmt.Sprintf("%.3f", r.Y)
		if r.ColumnID == prev {
			id, x, y = "", "", ""
		}
		prev = r.ColumnID

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.3f\t%s\t%s\t%s\t%s\t%s\n",
			id, x, y, r.Floor, r.Role, r.Area,
			optional(r.Permanent, r.HasPermanent),
			optional(r.Imposed, r.HasImposed),
			optional(r.TotalPermanent, r.HasTotals),
			optional(r.TotalImposed, r.HasTotals),
			optional(r.TotalSLS, r.HasTotals))
	}
	return tw.Flush()
}

func optional(v float64, present bool) string {
	if !present {
		return ""
	}
	return fmt.Sprintf("%.3f", v)
}

// WriteWorkbook writes the summary rows to an xlsx workbook with one
// "Load Summary" sheet. Repeated column IDs are blanked the same way
// the console table blanks them, and group totals appear only on each
// group's first row.
func WriteWorkbook(path string, rows []takedown.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ltderr.Wrap(ltderr.CodeIO, err, "creating output directory for %s", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Load Summary"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return ltderr.Wrap(ltderr.CodeIO, err, "creating sheet")
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return ltderr.Wrap(ltderr.CodeIO, err, "removing default sheet")
	}

	head := make([]any, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return ltderr.Wrap(ltderr.CodeIO, err, "writing header row")
	}

	prev := ""
	for i, r := range rows {
		record := make([]any, len(headers))
		if r.ColumnID != prev {
			record[0] = r.ColumnID
			record[1] = r.X
			record[2] = r.Y
		}
		prev = r.ColumnID
		record[3] = r.Floor
		record[4] = string(r.Role)
		record[5] = r.Area
		if r.HasPermanent {
			record[6] = r.Permanent
		}
		if r.HasImposed {
			record[7] = r.Imposed
		}
		if r.HasTotals {
			record[8] = r.TotalPermanent
			record[9] = r.TotalImposed
			record[10] = r.TotalSLS
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return ltderr.Wrap(ltderr.CodeIO, err, "addressing row %d", i+2)
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return ltderr.Wrap(ltderr.CodeIO, err, "writing row %d", i+2)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return ltderr.Wrap(ltderr.CodeIO, err, "saving %s", path)
	}
	return nil
}
