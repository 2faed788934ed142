package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func checkErrorContainsSubstring(t *testing.T, err error, substring string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing '%s', got nil", substring)
	}
	if !strings.Contains(err.Error(), substring) {
		t.Errorf(
			"Expected error message to contain '%s', got '%s'",
			substring,
			err.Error(),
		)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// textRow builds row of text cells, empty strings become blank cells.
func textRow(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		if v != "" {
			row[i] = Cell{Kind: CellText, Text: v}
		}
	}
	return row
}

// Rows of the depreciation report in the default layout.

func branchRow(branch string) Row {
	return textRow("Filial : 000101 - "+branch, "", "", "", "", "", "", "", "", "")
}

func accountRow(code, description string) Row {
	return textRow(code, description, "", "", "", "", "", "", "", "")
}

func itemRow(itemCode, description, date, subItem string) Row {
	return textRow("000101", "", itemCode, description, "", "", "", date, "", subItem)
}

func valueRow(original, updated, monthly, period, accumulated string) Row {
	return textRow(currencySymbol, "", original, updated, monthly, period, accumulated, "", "", "")
}

// writeTestXlsx saves sheets of string rows into the temporary directory.
// Cells which start with "=" are written as numbers, like "=43905".
func writeTestXlsx(t *testing.T, name string, sheets map[string][][]string, order []string) string {
	t.Helper()
	file := xlsx.NewFile()
	for _, sheetName := range order {
		sheet, err := file.AddSheet(sheetName)
		if err != nil {
			t.Fatalf("can't add sheet %s: %v", sheetName, err)
		}
		for _, values := range sheets[sheetName] {
			row := sheet.AddRow()
			for _, v := range values {
				cell := row.AddCell()
				if strings.HasPrefix(v, "=") {
					n, err := strconv.ParseFloat(v[1:], 64)
					if err != nil {
						t.Fatalf("bad number %q: %v", v, err)
					}
					cell.SetFloat(n)
				} else {
					cell.SetString(v)
				}
			}
		}
	}
	path := filepath.Join(t.TempDir(), name)
	if err := file.Save(path); err != nil {
		t.Fatalf("can't save %s: %v", path, err)
	}
	return path
}

func writeTestFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("can't write %s: %v", path, err)
	}
	return path
}
