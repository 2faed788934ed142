package main

import (
	"fmt"
	"path/filepath"

	"github.com/tealeg/xlsx"
)

func readXlsxFile(filePath string) (*Workbook, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return workbookFromXlsx(filePath, f)
}

func readXlsxBytes(name string, data []byte) (*Workbook, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return workbookFromXlsx(name, f)
}

func workbookFromXlsx(filePath string, f *xlsx.File) (*Workbook, error) {
	if len(f.Sheets) < 1 {
		return nil, ErrNoSheets
	}
	workbook := &Workbook{
		FileName: filepath.Base(filePath),
		Date1904: f.Date1904,
	}
	for _, sheet := range f.Sheets {
		rows := make([]Row, 0, len(sheet.Rows))
		for _, xlsxRow := range sheet.Rows {
			if xlsxRow == nil {
				rows = append(rows, Row{})
				continue
			}
			row := make(Row, len(xlsxRow.Cells))
			for j, cell := range xlsxRow.Cells {
				if cell == nil {
					continue
				}
				row[j] = cellFromString(cell.Value, cell.Type() == xlsx.CellTypeNumeric)
			}
			rows = append(rows, row)
		}
		workbook.Sheets = append(workbook.Sheets, Sheet{Name: sheet.Name, Rows: padRows(rows)})
	}
	return workbook, nil
}
