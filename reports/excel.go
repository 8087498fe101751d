package reports

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Exporter is one spreadsheet row. Implementations return cell values in
// header order.
type Exporter interface {
	CellValues() []interface{}
}

// WriteWorkbook writes a single-sheet workbook to path. The workbook is
// staged as a temp file next to the target and renamed into place, so
// callers either see the fully written artifact or no artifact at all.
func WriteWorkbook(path string, sheetName string, headers []string, rows []Exporter) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for rowIdx, row := range rows {
		for col, value := range row.CellValues() {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pending-*.xlsx")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
