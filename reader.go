package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoSheets          = errors.New("workbook has no sheets")
)

// Supported file extensions.
const (
	extXlsx = ".xlsx"
	extXls  = ".xls"
	extCsv  = ".csv"
	extTxt  = ".txt"
)

// IsSupportedFile returns true if file extension is one of supported formats.
func IsSupportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case extXlsx, extXls, extCsv, extTxt:
		return true
	}
	return false
}

// ReadWorkbookFile reads file from disk choosing the reader by extension.
func ReadWorkbookFile(filePath string, text TextConfig) (*Workbook, error) {
	name := filepath.Base(filePath)
	switch strings.ToLower(filepath.Ext(filePath)) {
	case extXlsx:
		return readXlsxFile(filePath)
	case extXls:
		return readXlsFile(name, filePath)
	case extCsv, extTxt:
		file, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()
		return readText(name, file, text)
	}
	return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, name)
}

// ReadWorkbookBytes reads uploaded file content, the name is used to choose the reader.
func ReadWorkbookBytes(name string, data []byte, text TextConfig) (*Workbook, error) {
	name = filepath.Base(name)
	switch strings.ToLower(filepath.Ext(name)) {
	case extXlsx:
		return readXlsxBytes(name, data)
	case extXls:
		return readXlsBytes(name, data)
	case extCsv, extTxt:
		return readText(name, strings.NewReader(string(data)), text)
	}
	return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, name)
}

// cellFromString builds cell from the stored value. If numeric is set and value parses
// as a finite number then cell is CellNumber.
func cellFromString(value string, numeric bool) Cell {
	text := strings.TrimSpace(value)
	if text == "" {
		return Cell{}
	}
	if numeric {
		if n, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return Cell{Kind: CellNumber, Text: text, Number: n}
		}
	}
	return Cell{Kind: CellText, Text: text}
}

// padRows makes all rows as wide as the widest one, like a grid of the whole sheet.
func padRows(rows []Row) []Row {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		if len(row) < width {
			padded := make(Row, width)
			copy(padded, row)
			rows[i] = padded
		}
	}
	return rows
}
