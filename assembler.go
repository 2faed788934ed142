package main

// AssemblyStats counts what happened while walking rows.
type AssemblyStats struct {
	Rows     int
	Emitted  int
	Sections int
	Accounts int
	// DroppedItems are items without value line: overwritten, interrupted or left at the end.
	DroppedItems int
	// OrphanValueLines are value lines without preceding item.
	OrphanValueLines int
	// RejectedDates are item lines with missing, unparseable or too old date.
	RejectedDates int
}

// Add accumulates other stats into s.
func (s *AssemblyStats) Add(other AssemblyStats) {
	s.Rows += other.Rows
	s.Emitted += other.Emitted
	s.Sections += other.Sections
	s.Accounts += other.Accounts
	s.DroppedItems += other.DroppedItems
	s.OrphanValueLines += other.OrphanValueLines
	s.RejectedDates += other.RejectedDates
}

// Assembler stitches classified rows of one worksheet into AssetRecord-s.
// Item becomes a record only when the value line arrives.
type Assembler struct {
	sourceFile         string
	branch             string
	accountCode        string
	accountDescription string
	pending            *AssetRecord
	records            []AssetRecord
	stats              AssemblyStats
}

// NewAssembler returns assembler with "unidentified" branch and account.
func NewAssembler(sourceFile string) *Assembler {
	return &Assembler{
		sourceFile:         sourceFile,
		branch:             UnidentifiedLabel,
		accountCode:        UnidentifiedLabel,
		accountDescription: UnidentifiedLabel,
	}
}

// Feed handles one row.
func (a *Assembler) Feed(row ClassifiedRow) {
	a.stats.Rows++
	switch r := row.(type) {
	case SectionHeaderRow:
		a.stats.Sections++
		a.dropPending()
		a.branch = r.Branch
	case AccountHeaderRow:
		a.stats.Accounts++
		a.dropPending()
		a.accountCode = r.Code
		a.accountDescription = r.Description
	case ItemRow:
		a.dropPending()
		if !r.IsDateValid {
			a.stats.RejectedDates++
			return
		}
		a.pending = &AssetRecord{
			Branch:             a.branch,
			AccountCode:        a.accountCode,
			AccountDescription: a.accountDescription,
			AcquisitionDate:    r.AcquisitionDate,
			ItemCode:           r.ItemCode,
			SubItemCode:        r.SubItemCode,
			ItemDescription:    r.Description,
			SourceFile:         a.sourceFile,
		}
	case ValueRow:
		if a.pending == nil {
			a.stats.OrphanValueLines++
			return
		}
		record := *a.pending
		record.OriginalValue = r.OriginalValue
		record.UpdatedValue = r.UpdatedValue
		record.MonthlyDepreciation = r.MonthlyDepreciation
		record.PeriodDepreciation = r.PeriodDepreciation
		record.AccumulatedDepreciation = r.AccumulatedDepreciation
		a.records = append(a.records, record)
		a.stats.Emitted++
		a.pending = nil
	}
}

func (a *Assembler) dropPending() {
	if a.pending != nil {
		a.stats.DroppedItems++
		a.pending = nil
	}
}

// Finish drops unfinished item and returns all emitted records with stats.
func (a *Assembler) Finish() ([]AssetRecord, AssemblyStats) {
	a.dropPending()
	return a.records, a.stats
}

// AssembleSheet classifies and assembles all rows of one sheet.
func AssembleSheet(sheet Sheet, classifier *Classifier, sourceFile string) ([]AssetRecord, AssemblyStats) {
	assembler := NewAssembler(sourceFile)
	for _, row := range sheet.Rows {
		assembler.Feed(classifier.Classify(row))
	}
	return assembler.Finish()
}
