package main

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// OutputDateFormat format for data in outputs.
const OutputDateFormat = "2006-01-02"

// UnidentifiedLabel is used for branch and account until the report names them.
const UnidentifiedLabel = "Não Identificado"

// AssetRecord represents a single itemized fixed asset with its depreciation figures.
type AssetRecord struct {
	// Branch the asset belongs to ("Filial"), may be UnidentifiedLabel.
	Branch string
	// AccountCode is the ledger code from the last account header, like "1.2.3.01".
	AccountCode string
	// AccountDescription from the last account header.
	AccountDescription string
	// AcquisitionDate of the asset.
	AcquisitionDate time.Time
	// ItemCode of the asset.
	ItemCode string
	// SubItemCode of the asset, may be empty.
	SubItemCode string
	// ItemDescription is a free text.
	ItemDescription string
	// OriginalValue at acquisition.
	OriginalValue decimal.Decimal
	// UpdatedValue after monetary correction.
	UpdatedValue decimal.Decimal
	// MonthlyDepreciation for the report month.
	MonthlyDepreciation decimal.Decimal
	// PeriodDepreciation for the fiscal year so far.
	PeriodDepreciation decimal.Decimal
	// AccumulatedDepreciation since acquisition.
	AccumulatedDepreciation decimal.Decimal
	// SourceFile is a name of the file the record was read from.
	SourceFile string
}

// ResidualValue is updated value minus accumulated depreciation.
func (r AssetRecord) ResidualValue() decimal.Decimal {
	return r.UpdatedValue.Sub(r.AccumulatedDepreciation)
}

// MarshalJSON implements the json.Marshaler interface with derived residual value.
func (r AssetRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Branch                  string          `json:"branch"`
		AccountCode             string          `json:"accountCode"`
		AccountDescription      string          `json:"accountDescription"`
		AcquisitionDate         string          `json:"acquisitionDate"`
		ItemCode                string          `json:"itemCode"`
		SubItemCode             string          `json:"subItemCode"`
		ItemDescription         string          `json:"itemDescription"`
		OriginalValue           decimal.Decimal `json:"originalValue"`
		UpdatedValue            decimal.Decimal `json:"updatedValue"`
		MonthlyDepreciation     decimal.Decimal `json:"monthlyDepreciation"`
		PeriodDepreciation      decimal.Decimal `json:"periodDepreciation"`
		AccumulatedDepreciation decimal.Decimal `json:"accumulatedDepreciation"`
		ResidualValue           decimal.Decimal `json:"residualValue"`
		SourceFile              string          `json:"sourceFile"`
	}{
		Branch:                  r.Branch,
		AccountCode:             r.AccountCode,
		AccountDescription:      r.AccountDescription,
		AcquisitionDate:         r.AcquisitionDate.Format(OutputDateFormat),
		ItemCode:                r.ItemCode,
		SubItemCode:             r.SubItemCode,
		ItemDescription:         r.ItemDescription,
		OriginalValue:           r.OriginalValue,
		UpdatedValue:            r.UpdatedValue,
		MonthlyDepreciation:     r.MonthlyDepreciation,
		PeriodDepreciation:      r.PeriodDepreciation,
		AccumulatedDepreciation: r.AccumulatedDepreciation,
		ResidualValue:           r.ResidualValue(),
		SourceFile:              r.SourceFile,
	})
}

// CellKind is a detected type of the spreadsheet cell.
type CellKind int

const (
	CellBlank CellKind = iota
	CellText
	CellNumber
)

// Cell is a single spreadsheet or text export value.
type Cell struct {
	Kind CellKind
	// Text is the raw value as stored in the file, trimmed.
	Text string
	// Number is set only for CellNumber.
	Number float64
}

// Row is a list of cells in column order.
type Row []Cell

// At returns cell by index or blank cell if row is shorter.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// Sheet is one worksheet of the file. Delimited text exports have exactly one.
type Sheet struct {
	Name string
	Rows []Row
}

// Workbook is a file read into memory.
type Workbook struct {
	FileName string
	// Date1904 is true when serial dates are counted from 1904.
	Date1904 bool
	Sheets   []Sheet
}

// FileParser parses asset records from the specified by path file or from file content.
type FileParser interface {
	// ParseRecordsFromFile returns records in emission order or error if file can't be read.
	ParseRecordsFromFile(filePath string) ([]AssetRecord, AssemblyStats, error)
	// ParseRecordsFromBytes is ParseRecordsFromFile for content of the named file.
	ParseRecordsFromBytes(name string, data []byte) ([]AssetRecord, AssemblyStats, error)
}
