package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func branches(records []AssetRecord) []string {
	result := make([]string, len(records))
	for i, r := range records {
		result[i] = r.Branch
	}
	return result
}

func recordsOf(file string, branchNames ...string) []AssetRecord {
	records := make([]AssetRecord, len(branchNames))
	for i, b := range branchNames {
		records[i] = AssetRecord{Branch: b, SourceFile: file, AccountDescription: "Equip"}
	}
	return records
}

func TestBuildDataset_Backfill(t *testing.T) {
	u := UnidentifiedLabel
	tests := []struct {
		name     string
		files    []FileResult
		expected []string
	}{
		{
			name:     "unidentified replaced by the only branch",
			files:    []FileResult{{FileName: "a", Records: recordsOf("a", u, "A", "A", u)}},
			expected: []string{"A", "A", "A", "A"},
		},
		{
			name:     "most frequent branch wins",
			files:    []FileResult{{FileName: "a", Records: recordsOf("a", u, "B", "A", "B")}},
			expected: []string{"B", "B", "A", "B"},
		},
		{
			name:     "tie resolved to smallest",
			files:    []FileResult{{FileName: "a", Records: recordsOf("a", "C", u, "B")}},
			expected: []string{"C", "B", "B"},
		},
		{
			name:     "all unidentified stay",
			files:    []FileResult{{FileName: "a", Records: recordsOf("a", u, u)}},
			expected: []string{u, u},
		},
		{
			name: "files are backfilled independently",
			files: []FileResult{
				{FileName: "a", Records: recordsOf("a", u, "A")},
				{FileName: "b", Records: recordsOf("b", "B", u)},
				{FileName: "c", Records: recordsOf("c", u)},
			},
			expected: []string{"A", "A", "B", "B", u},
		},
		{
			name:     "no files",
			files:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataset := BuildDataset(tt.files)
			if diff := cmp.Diff(tt.expected, branches(dataset.Records)); diff != "" {
				t.Errorf("branches mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestBuildDataset_KeepsOrderAndInput(t *testing.T) {
	input := []AssetRecord{
		{ItemCode: "2", Branch: UnidentifiedLabel, SourceFile: "a"},
		{ItemCode: "1", Branch: "A", SourceFile: "a"},
	}
	dataset := BuildDataset([]FileResult{
		{FileName: "a", Records: input},
		{FileName: "b", Records: []AssetRecord{{ItemCode: "3", Branch: "B", SourceFile: "b"}}},
	})

	var items []string
	for _, r := range dataset.Records {
		items = append(items, r.ItemCode)
	}
	if diff := cmp.Diff([]string{"2", "1", "3"}, items); diff != "" {
		t.Errorf("order mismatch (-expected +got):\n%s", diff)
	}
	if input[0].Branch != UnidentifiedLabel {
		t.Errorf("input records should not be modified, got branch %s", input[0].Branch)
	}
}

func TestDataset_Filter(t *testing.T) {
	dataset := &Dataset{Records: []AssetRecord{
		{ItemCode: "1", SourceFile: "jan.xlsx", Branch: "A", AccountDescription: "Equip"},
		{ItemCode: "2", SourceFile: "jan.xlsx", Branch: "B", AccountDescription: "Veículos"},
		{ItemCode: "3", SourceFile: "fev.xlsx", Branch: "A", AccountDescription: "Veículos"},
	}}

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{"empty filter", Filter{}, []string{"1", "2", "3"}},
		{"by file", Filter{Files: []string{"jan.xlsx"}}, []string{"1", "2"}},
		{"by branch", Filter{Branches: []string{"A"}}, []string{"1", "3"}},
		{"by account", Filter{Accounts: []string{"Veículos"}}, []string{"2", "3"}},
		{"combined", Filter{Branches: []string{"A"}, Accounts: []string{"Veículos"}}, []string{"3"}},
		{"several values", Filter{Branches: []string{"A", "B"}, Files: []string{"fev.xlsx"}}, []string{"3"}},
		{"nothing matches", Filter{Branches: []string{"C"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []string{}
			for _, r := range dataset.Filter(tt.filter).Records {
				items = append(items, r.ItemCode)
			}
			if diff := cmp.Diff(tt.expected, items); diff != "" {
				t.Errorf("filtered items mismatch (-expected +got):\n%s", diff)
			}
		})
	}
	if !(Filter{}).IsEmpty() || (Filter{Files: []string{"x"}}).IsEmpty() {
		t.Error("IsEmpty returned wrong result")
	}
}

func TestDataset_Options(t *testing.T) {
	dataset := &Dataset{Records: []AssetRecord{
		{SourceFile: "jan.xlsx", Branch: "B", AccountDescription: "Veículos"},
		{SourceFile: "fev.xlsx", Branch: "A", AccountDescription: "Equip"},
		{SourceFile: "jan.xlsx", Branch: "A", AccountDescription: "Equip"},
	}}
	expected := FilterOptions{
		Files:    []string{"fev.xlsx", "jan.xlsx"},
		Branches: []string{"A", "B"},
		Accounts: []string{"Equip", "Veículos"},
	}
	if diff := cmp.Diff(expected, dataset.Options()); diff != "" {
		t.Errorf("options mismatch (-expected +got):\n%s", diff)
	}
}

func TestRecordColumns(t *testing.T) {
	record := AssetRecord{
		Branch:                  "A",
		UpdatedValue:            dec("10"),
		AccumulatedDepreciation: dec("4"),
		SourceFile:              "a.xlsx",
	}
	if len(RecordColumns) != 14 {
		t.Fatalf("expected 14 columns, got %d", len(RecordColumns))
	}
	if RecordColumns[0].Text(record) != "A" || RecordColumns[13].Text(record) != "a.xlsx" {
		t.Error("unexpected text columns order")
	}
	if !RecordColumns[12].Amount(record).Equal(dec("6")) {
		t.Errorf("expected residual 6, got %s", RecordColumns[12].Amount(record))
	}
	for _, c := range RecordColumns {
		if (c.Text == nil) == (c.Amount == nil) {
			t.Errorf("column %s should have exactly one getter", c.Key)
		}
	}
}
