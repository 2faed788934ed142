package main

import (
	"github.com/rs/zerolog"
)

// ReportParser parses fixed-asset depreciation reports of any supported format.
type ReportParser struct {
	Layout ReportLayout
	Text   TextConfig
	Log    zerolog.Logger
}

// NewReportParser returns parser configured by cfg.
func NewReportParser(cfg *Config, log zerolog.Logger) ReportParser {
	return ReportParser{
		Layout: cfg.Layout,
		Text:   cfg.Text,
		Log:    log,
	}
}

func (p ReportParser) ParseRecordsFromFile(filePath string) ([]AssetRecord, AssemblyStats, error) {
	workbook, err := ReadWorkbookFile(filePath, p.Text)
	if err != nil {
		return nil, AssemblyStats{}, err
	}
	records, stats := p.ParseWorkbook(workbook)
	return records, stats, nil
}

// ParseRecordsFromBytes parses uploaded file content. Format is taken from the name.
func (p ReportParser) ParseRecordsFromBytes(name string, data []byte) ([]AssetRecord, AssemblyStats, error) {
	workbook, err := ReadWorkbookBytes(name, data, p.Text)
	if err != nil {
		return nil, AssemblyStats{}, err
	}
	records, stats := p.ParseWorkbook(workbook)
	return records, stats, nil
}

// ParseWorkbook assembles records of all sheets in sheet order.
// Branch, account and pending item never cross sheet boundaries.
func (p ReportParser) ParseWorkbook(workbook *Workbook) ([]AssetRecord, AssemblyStats) {
	classifier := NewClassifier(p.Layout, workbook.Date1904)
	var records []AssetRecord
	var total AssemblyStats
	for _, sheet := range workbook.Sheets {
		sheetRecords, stats := AssembleSheet(sheet, classifier, workbook.FileName)
		p.Log.Debug().
			Str("file", workbook.FileName).
			Str("sheet", sheet.Name).
			Int("rows", stats.Rows).
			Int("records", stats.Emitted).
			Int("dropped_items", stats.DroppedItems).
			Int("orphan_value_lines", stats.OrphanValueLines).
			Int("rejected_dates", stats.RejectedDates).
			Msg("Sheet parsed")
		records = append(records, sheetRecords...)
		total.Add(stats)
	}
	if total.DroppedItems > 0 || total.OrphanValueLines > 0 {
		p.Log.Warn().
			Str("file", workbook.FileName).
			Int("dropped_items", total.DroppedItems).
			Int("orphan_value_lines", total.OrphanValueLines).
			Msg("Items without values were skipped")
	}
	p.Log.Info().
		Str("file", workbook.FileName).
		Int("sheets", len(workbook.Sheets)).
		Int("records", len(records)).
		Msg("File parsed")
	return records, total
}
