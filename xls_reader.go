package main

import (
	"fmt"
	"os"

	"github.com/shakinm/xlsReader/xls"
)

func readXlsFile(name, filePath string) (*Workbook, error) {
	f, err := xls.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	if f.GetNumberSheets() < 1 {
		return nil, ErrNoSheets
	}
	workbook := &Workbook{FileName: name}
	for i := 0; i < f.GetNumberSheets(); i++ {
		sheet, err := f.GetSheet(i)
		if err != nil {
			return nil, fmt.Errorf("failed to get %d sheet: %w", i, err)
		}
		if sheet == nil {
			continue
		}

		var rows []Row
		for r := 0; r <= sheet.GetNumberRows(); r++ {
			xlsRow, err := sheet.GetRow(r)
			if err != nil || xlsRow == nil {
				// Rows without cells are not stored in the file.
				rows = append(rows, Row{})
				continue
			}
			cols := xlsRow.GetCols()
			row := make(Row, len(cols))
			for j, col := range cols {
				if col == nil {
					continue
				}
				// Type of the xls record isn't exposed, so every cell which looks like a number is one.
				row[j] = cellFromString(col.GetString(), true)
			}
			rows = append(rows, row)
		}
		workbook.Sheets = append(workbook.Sheets, Sheet{Name: sheet.GetName(), Rows: padRows(rows)})
	}
	return workbook, nil
}

// readXlsBytes stores content in the temporary file because xls reader works only with files.
func readXlsBytes(name string, data []byte) (*Workbook, error) {
	tempFile, err := os.CreateTemp("", "upload-*.xls")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}
	return readXlsFile(name, tempFile.Name())
}
