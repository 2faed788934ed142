package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RowKind is a category of the report row.
type RowKind int

const (
	RowIgnore RowKind = iota
	RowSectionHeader
	RowAccountHeader
	RowItemLine
	RowValueLine
)

func (k RowKind) String() string {
	switch k {
	case RowSectionHeader:
		return "SectionHeader"
	case RowAccountHeader:
		return "AccountHeader"
	case RowItemLine:
		return "ItemLine"
	case RowValueLine:
		return "ValueLine"
	}
	return "Ignore"
}

// ClassifiedRow is one of SectionHeaderRow, AccountHeaderRow, ItemRow, ValueRow or IgnoredRow.
type ClassifiedRow interface {
	Kind() RowKind
}

// SectionHeaderRow starts section of one branch: "Filial : 000101 - GW Sistemas".
type SectionHeaderRow struct {
	Branch string
}

// AccountHeaderRow starts group of items of one ledger account.
type AccountHeaderRow struct {
	Code        string
	Description string
}

// ItemRow describes one asset, monetary values follow in the next ValueRow.
type ItemRow struct {
	ItemCode        string
	SubItemCode     string
	Description     string
	AcquisitionDate time.Time
	// IsDateValid is false if date is missing, unparseable or too old.
	IsDateValid bool
}

// ValueRow holds monetary values of the preceding item.
type ValueRow struct {
	OriginalValue           decimal.Decimal
	UpdatedValue            decimal.Decimal
	MonthlyDepreciation     decimal.Decimal
	PeriodDepreciation      decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
}

// IgnoredRow is a blank, boilerplate or unrecognized row.
type IgnoredRow struct{}

func (SectionHeaderRow) Kind() RowKind { return RowSectionHeader }
func (AccountHeaderRow) Kind() RowKind { return RowAccountHeader }
func (ItemRow) Kind() RowKind          { return RowItemLine }
func (ValueRow) Kind() RowKind         { return RowValueLine }
func (IgnoredRow) Kind() RowKind       { return RowIgnore }

// Classifier assigns rows to categories by positional rules of ReportLayout.
type Classifier struct {
	layout     ReportLayout
	dateParser DateParser
	minDate    time.Time
	ignore     map[string]struct{}
}

// NewClassifier returns classifier for one workbook.
func NewClassifier(layout ReportLayout, date1904 bool) *Classifier {
	ignore := make(map[string]struct{}, len(layout.IgnoreTexts))
	for _, text := range layout.IgnoreTexts {
		ignore[strings.TrimSpace(text)] = struct{}{}
	}
	return &Classifier{
		layout:     layout,
		dateParser: DateParser{FixedLayout: layout.DateLayout, Date1904: date1904},
		minDate:    layout.MinAcquisitionTime(),
		ignore:     ignore,
	}
}

// Classify returns category of the row with extracted fields.
func (c *Classifier) Classify(row Row) ClassifiedRow {
	first := strings.TrimSpace(row.At(0).Text)
	if first == "" {
		return IgnoredRow{}
	}
	if _, ok := c.ignore[first]; ok {
		return IgnoredRow{}
	}

	if i := strings.Index(first, c.layout.BranchMarker); i >= 0 {
		branch := first[i+len(c.layout.BranchMarker):]
		if c.layout.BranchSeparator != "" {
			if j := strings.LastIndex(branch, c.layout.BranchSeparator); j >= 0 {
				branch = branch[j+len(c.layout.BranchSeparator):]
			}
		}
		branch = strings.TrimSpace(branch)
		if branch == "" {
			branch = UnidentifiedLabel
		}
		return SectionHeaderRow{Branch: branch}
	}

	if strings.HasPrefix(first, c.layout.AccountPrefix) {
		return AccountHeaderRow{
			Code:        first,
			Description: strings.TrimSpace(row.At(1).Text),
		}
	}

	if first == c.layout.ValueMarker {
		cols := c.layout.ValueColumns
		return ValueRow{
			OriginalValue:           NormalizeAmount(row.At(cols.OriginalValue)),
			UpdatedValue:            NormalizeAmount(row.At(cols.UpdatedValue)),
			MonthlyDepreciation:     NormalizeAmount(row.At(cols.MonthlyDepreciation)),
			PeriodDepreciation:      NormalizeAmount(row.At(cols.PeriodDepreciation)),
			AccumulatedDepreciation: NormalizeAmount(row.At(cols.AccumulatedDepreciation)),
		}
	}

	cols := c.layout.ItemColumns
	itemCode := cellCode(row.At(cols.ItemCode))
	if len(row) >= c.layout.MinItemColumns &&
		len(cellCode(row.At(0))) == c.layout.ItemCodeLength && isDigits(cellCode(row.At(0))) &&
		isDigits(itemCode) {
		item := ItemRow{
			ItemCode:    itemCode,
			SubItemCode: cellCode(row.At(cols.SubItemCode)),
			Description: strings.TrimSpace(row.At(cols.Description).Text),
		}
		if date, ok := c.dateParser.Parse(row.At(cols.AcquisitionDate)); ok && !date.Before(c.minDate) {
			item.AcquisitionDate = date
			item.IsDateValid = true
		}
		return item
	}

	return IgnoredRow{}
}

// cellCode returns code-like text. Digits are kept as stored to preserve leading zeros,
// other integral numbers are printed without fraction.
func cellCode(cell Cell) string {
	text := strings.TrimSpace(cell.Text)
	if cell.Kind == CellNumber && !isDigits(text) && cell.Number == float64(int64(cell.Number)) {
		return strconv.FormatInt(int64(cell.Number), 10)
	}
	return text
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
