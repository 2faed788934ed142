package main

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const defaultExcelSheet = "Sheet1"

// aggregateSheets are sheets with aggregates after the records sheet.
var aggregateSheets = []struct {
	titleKey string
	kind     AggregationKind
}{
	{"By branch sheet", AggregateBranch},
	{"By account sheet", AggregateAccount},
	{"By branch and account sheet", AggregateBranchAndAccount},
}

// WriteExcel writes workbook with the records sheet and sheets of aggregates.
// Amounts are written as numbers without formatting.
func WriteExcel(w io.Writer, dataset *Dataset, i18n *I18n) error {
	f := excelize.NewFile()
	defer f.Close()

	recordsSheet := i18n.T("Records sheet")
	if err := f.SetSheetName(defaultExcelSheet, recordsSheet); err != nil {
		return fmt.Errorf("can't rename sheet: %w", err)
	}
	rows := [][]interface{}{recordHeaders(i18n)}
	for _, r := range dataset.Records {
		row := make([]interface{}, len(RecordColumns))
		for i, c := range RecordColumns {
			if c.Amount != nil {
				row[i] = c.Amount(r).InexactFloat64()
			} else {
				row[i] = c.Text(r)
			}
		}
		rows = append(rows, row)
	}
	if err := writeExcelRows(f, recordsSheet, rows); err != nil {
		return err
	}

	for _, sheet := range aggregateSheets {
		name := i18n.T(sheet.titleKey)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("can't create sheet '%s': %w", name, err)
		}
		rows := [][]interface{}{aggregateHeaders(sheet.kind, i18n)}
		for _, group := range Aggregate(dataset.Records, sheet.kind) {
			row := groupKeyValues(group, sheet.kind)
			row = append(row, group.Count)
			for _, amount := range groupAmounts(group) {
				row = append(row, amount.InexactFloat64())
			}
			rows = append(rows, row)
		}
		if err := writeExcelRows(f, name, rows); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("can't write workbook: %w", err)
	}
	return nil
}

func writeExcelRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("can't write %d row of '%s' sheet: %w", i+1, sheet, err)
		}
	}
	return nil
}

// WriteCSV writes records as ';' separated text with translated headers.
func WriteCSV(w io.Writer, dataset *Dataset, i18n *I18n) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	headers := make([]string, len(RecordColumns))
	for i, c := range RecordColumns {
		headers[i] = i18n.T(c.Key)
	}
	if err := writer.Write(headers); err != nil {
		return err
	}
	for _, r := range dataset.Records {
		row := make([]string, len(RecordColumns))
		for i, c := range RecordColumns {
			if c.Amount != nil {
				row[i] = c.Amount(r).String()
			} else {
				row[i] = c.Text(r)
			}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func recordHeaders(i18n *I18n) []interface{} {
	headers := make([]interface{}, len(RecordColumns))
	for i, c := range RecordColumns {
		headers[i] = i18n.T(c.Key)
	}
	return headers
}

var groupAmountKeys = []string{
	"Original value",
	"Updated value",
	"Monthly depreciation",
	"Period depreciation",
	"Accumulated depreciation",
	"Residual value",
}

func aggregateHeaders(kind AggregationKind, i18n *I18n) []interface{} {
	var headers []interface{}
	switch kind {
	case AggregateBranch:
		headers = append(headers, i18n.T("Branch"))
	case AggregateAccount:
		headers = append(headers, i18n.T("Account description"))
	case AggregateBranchAndAccount:
		headers = append(headers, i18n.T("Branch"), i18n.T("Account description"))
	}
	headers = append(headers, i18n.T("Count"))
	for _, key := range groupAmountKeys {
		headers = append(headers, i18n.T(key))
	}
	return headers
}

func groupKeyValues(g *Group, kind AggregationKind) []interface{} {
	switch kind {
	case AggregateAccount:
		return []interface{}{g.AccountDescription}
	case AggregateBranchAndAccount:
		return []interface{}{g.Branch, g.AccountDescription}
	}
	return []interface{}{g.Branch}
}

// groupAmounts returns sums in order of groupAmountKeys.
func groupAmounts(g *Group) []decimal.Decimal {
	return []decimal.Decimal{
		g.OriginalValue,
		g.UpdatedValue,
		g.MonthlyDepreciation,
		g.PeriodDepreciation,
		g.AccumulatedDepreciation,
		g.ResidualValue,
	}
}
