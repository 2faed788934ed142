package main

import (
	"sort"

	"github.com/shopspring/decimal"
)

// FileResult is a list of records parsed from one file, in emission order.
type FileResult struct {
	FileName string
	Records  []AssetRecord
}

// Dataset is a merged list of records of many files.
type Dataset struct {
	Records []AssetRecord
}

// Column is one column of the dataset in outputs.
type Column struct {
	// Key is a translation key of the header.
	Key string
	// Text returns value of text columns.
	Text func(AssetRecord) string
	// Amount returns value of monetary columns, nil for text columns.
	Amount func(AssetRecord) decimal.Decimal
}

// RecordColumns is the fixed order of columns in outputs.
var RecordColumns = []Column{
	{Key: "Branch", Text: func(r AssetRecord) string { return r.Branch }},
	{Key: "Account code", Text: func(r AssetRecord) string { return r.AccountCode }},
	{Key: "Account description", Text: func(r AssetRecord) string { return r.AccountDescription }},
	{Key: "Acquisition date", Text: func(r AssetRecord) string { return r.AcquisitionDate.Format(OutputDateFormat) }},
	{Key: "Item code", Text: func(r AssetRecord) string { return r.ItemCode }},
	{Key: "Sub-item code", Text: func(r AssetRecord) string { return r.SubItemCode }},
	{Key: "Item description", Text: func(r AssetRecord) string { return r.ItemDescription }},
	{Key: "Original value", Amount: func(r AssetRecord) decimal.Decimal { return r.OriginalValue }},
	{Key: "Updated value", Amount: func(r AssetRecord) decimal.Decimal { return r.UpdatedValue }},
	{Key: "Monthly depreciation", Amount: func(r AssetRecord) decimal.Decimal { return r.MonthlyDepreciation }},
	{Key: "Period depreciation", Amount: func(r AssetRecord) decimal.Decimal { return r.PeriodDepreciation }},
	{Key: "Accumulated depreciation", Amount: func(r AssetRecord) decimal.Decimal { return r.AccumulatedDepreciation }},
	{Key: "Residual value", Amount: func(r AssetRecord) decimal.Decimal { return r.ResidualValue() }},
	{Key: "File", Text: func(r AssetRecord) string { return r.SourceFile }},
}

// BuildDataset concatenates records in file order. Unidentified branches
// of each file are replaced by the most frequent real branch of the same file.
func BuildDataset(files []FileResult) *Dataset {
	dataset := &Dataset{Records: make([]AssetRecord, 0)}
	for _, file := range files {
		records := make([]AssetRecord, len(file.Records))
		copy(records, file.Records)
		backfillBranches(records)
		dataset.Records = append(dataset.Records, records...)
	}
	return dataset
}

// backfillBranches sets the predominant branch to records with UnidentifiedLabel.
// Ties are resolved to the lexicographically smallest branch.
func backfillBranches(records []AssetRecord) {
	counts := make(map[string]int)
	hasUnidentified := false
	for _, r := range records {
		if r.Branch == UnidentifiedLabel {
			hasUnidentified = true
			continue
		}
		counts[r.Branch]++
	}
	if !hasUnidentified || len(counts) == 0 {
		return
	}

	predominant := ""
	for branch, count := range counts {
		if predominant == "" || count > counts[predominant] ||
			(count == counts[predominant] && branch < predominant) {
			predominant = branch
		}
	}
	for i := range records {
		if records[i].Branch == UnidentifiedLabel {
			records[i].Branch = predominant
		}
	}
}

// Filter selects records by file, branch and account description. Empty list means all.
type Filter struct {
	Files    []string
	Branches []string
	Accounts []string
}

// IsEmpty returns true if filter matches everything.
func (f Filter) IsEmpty() bool {
	return len(f.Files) == 0 && len(f.Branches) == 0 && len(f.Accounts) == 0
}

// Matches returns true if record passes all lists of the filter.
func (f Filter) Matches(r AssetRecord) bool {
	return matchesAny(f.Files, r.SourceFile) &&
		matchesAny(f.Branches, r.Branch) &&
		matchesAny(f.Accounts, r.AccountDescription)
}

func matchesAny(values []string, value string) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// Filter returns new dataset with matching records in the same order.
func (d *Dataset) Filter(f Filter) *Dataset {
	result := &Dataset{Records: make([]AssetRecord, 0, len(d.Records))}
	for _, r := range d.Records {
		if f.Matches(r) {
			result.Records = append(result.Records, r)
		}
	}
	return result
}

// FilterOptions are sorted distinct values which may be used in Filter.
type FilterOptions struct {
	Files    []string `json:"files"`
	Branches []string `json:"branches"`
	Accounts []string `json:"accounts"`
}

// Options returns values present in the dataset.
func (d *Dataset) Options() FilterOptions {
	files := make(map[string]struct{})
	branches := make(map[string]struct{})
	accounts := make(map[string]struct{})
	for _, r := range d.Records {
		files[r.SourceFile] = struct{}{}
		branches[r.Branch] = struct{}{}
		accounts[r.AccountDescription] = struct{}{}
	}
	return FilterOptions{
		Files:    sortedKeys(files),
		Branches: sortedKeys(branches),
		Accounts: sortedKeys(accounts),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
