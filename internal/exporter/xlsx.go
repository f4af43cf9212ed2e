package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes the same tabular content as WriteCSV into a single-sheet
// XLSX workbook. Spreadsheet output is a convenience mirror of the CSV; the
// CSV remains the durable interface.
func WriteXLSX(path, sheet string, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("remove default sheet: %w", err)
		}
	}

	rowNum := 1
	if len(options.Headers) > 0 {
		if err := writeRow(f, sheet, rowNum, options.Headers); err != nil {
			return err
		}
		rowNum++
	}
	for _, record := range options.Records {
		if err := writeRow(f, sheet, rowNum, record); err != nil {
			return err
		}
		rowNum++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	slog.Info("XLSX file written",
		slog.String("path", path),
		slog.Int("record_count", len(options.Records)))
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d coordinates: %w", rowNum, err)
	}
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}
