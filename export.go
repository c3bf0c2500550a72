package gridview

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"
)

// exportRecords evaluates the export-applicable columns for every row,
// returning one header record of labels followed by one record per row.
// Attribute overrides from pair-form cell results are discarded; exports
// have no cell attributes.
func exportRecords[T any](st *State[T], cols *Columns[T]) ([][]string, error) {
	header := make([]string, 0, cols.Count(ModeExport))
	for c := range cols.ForMode(ModeExport) {
		header = append(header, c.Label)
	}
	records := [][]string{header}

	for i, row := range st.Rows {
		rec := make([]string, 0, len(header))
		for c := range cols.ForMode(ModeExport) {
			v, _, err := evalCellRaw(c, RowContext[T]{Index: i, State: st}, row)
			if err != nil {
				return nil, err
			}
			rec = append(rec, plainValue(v))
		}
		records = append(records, rec)
	}
	return records, nil
}

// ExportFlat writes the grid as an XLSX workbook to a temporary file and
// returns its path. It shares the column registry and cell evaluation
// with table mode but emits no markup: one header row of labels, then one
// row per grid row.
func ExportFlat[T any](st *State[T], decls ...Column[T]) (string, error) {
	cols, err := NewColumns(decls...)
	if err != nil {
		return "", err
	}
	records, err := exportRecords(st, cols)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	widths := make([]int, len(records[0]))
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", fmt.Errorf("gridview: export %q: %w", st.Name, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rec); err != nil {
			return "", fmt.Errorf("gridview: export %q: %w", st.Name, err)
		}
		for col, v := range rec {
			if w := runewidth.StringWidth(v); col < len(widths) && w > widths[col] {
				widths[col] = w
			}
		}
	}
	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return "", fmt.Errorf("gridview: export %q: %w", st.Name, err)
		}
		// Padded a little so the widest value does not touch the border.
		if err := f.SetColWidth(sheet, name, name, float64(w)+2); err != nil {
			return "", fmt.Errorf("gridview: export %q: %w", st.Name, err)
		}
	}

	tmp, err := os.CreateTemp("", "gridview-"+st.Name+"-*.xlsx")
	if err != nil {
		return "", fmt.Errorf("gridview: export %q: %w", st.Name, err)
	}
	path := tmp.Name()
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("gridview: export %q: %w", st.Name, err)
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("gridview: export %q: %w", st.Name, err)
	}
	return path, nil
}

// ExportCSV writes the same flat records as [ExportFlat] to w as CSV.
func ExportCSV[T any](w io.Writer, st *State[T], decls ...Column[T]) error {
	cols, err := NewColumns(decls...)
	if err != nil {
		return err
	}
	records, err := exportRecords(st, cols)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
