package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func record(branch, account, updated, accumulated string) AssetRecord {
	return AssetRecord{
		Branch:                  branch,
		AccountDescription:      account,
		OriginalValue:           dec(updated),
		UpdatedValue:            dec(updated),
		MonthlyDepreciation:     dec("1"),
		PeriodDepreciation:      dec("2"),
		AccumulatedDepreciation: dec(accumulated),
	}
}

var statisticRecords = []AssetRecord{
	record("B", "Equip", "100", "40"),
	record("A", "Veículos", "1000.10", "100"),
	record("A", "Equip", "50", "50"),
	record("B", "Equip", "10.5", "0"),
}

func TestAggregateByBranch(t *testing.T) {
	expected := GroupList{
		{Name: "A", Branch: "A", Totals: Totals{
			Count:                   2,
			OriginalValue:           dec("1050.1"),
			UpdatedValue:            dec("1050.1"),
			MonthlyDepreciation:     dec("2"),
			PeriodDepreciation:      dec("4"),
			AccumulatedDepreciation: dec("150"),
			ResidualValue:           dec("900.1"),
		}},
		{Name: "B", Branch: "B", Totals: Totals{
			Count:                   2,
			OriginalValue:           dec("110.5"),
			UpdatedValue:            dec("110.5"),
			MonthlyDepreciation:     dec("2"),
			PeriodDepreciation:      dec("4"),
			AccumulatedDepreciation: dec("40"),
			ResidualValue:           dec("70.5"),
		}},
	}
	if diff := cmp.Diff(expected, AggregateByBranch(statisticRecords), decimalComparer); diff != "" {
		t.Errorf("groups mismatch (-expected +got):\n%s", diff)
	}
}

func TestAggregate_ByteOrderOfNames(t *testing.T) {
	records := []AssetRecord{
		record("Zeta", "Óleo", "1", "0"),
		record("GW Águas", "Equip", "1", "0"),
		record("GW Energia", "Veículos", "1", "0"),
		record("GW águas", "equip", "1", "0"),
		record("GW Energia", "Edificações", "1", "0"),
	}
	tests := []struct {
		kind     AggregationKind
		expected []string
	}{
		{AggregateBranch, []string{"GW Energia", "GW Águas", "GW águas", "Zeta"}},
		{AggregateAccount, []string{"Edificações", "Equip", "Veículos", "equip", "Óleo"}},
		{AggregateBranchAndAccount, []string{
			"GW Energia / Edificações",
			"GW Energia / Veículos",
			"GW Águas / Equip",
			"GW águas / equip",
			"Zeta / Óleo",
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			var names []string
			for _, g := range Aggregate(records, tt.kind) {
				names = append(names, g.Name)
			}
			if diff := cmp.Diff(tt.expected, names); diff != "" {
				t.Errorf("order mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestAggregateByAccountDescription(t *testing.T) {
	groups := AggregateByAccountDescription(statisticRecords)
	var names []string
	var counts []int
	for _, g := range groups {
		names = append(names, g.Name)
		counts = append(counts, g.Count)
	}
	if diff := cmp.Diff([]string{"Equip", "Veículos"}, names); diff != "" {
		t.Errorf("names mismatch (-expected +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 1}, counts); diff != "" {
		t.Errorf("counts mismatch (-expected +got):\n%s", diff)
	}
	if !groups[0].ResidualValue.Equal(dec("70.5")) {
		t.Errorf("expected Equip residual 70.5, got %s", groups[0].ResidualValue)
	}
}

func TestAggregateByBranchAndAccount(t *testing.T) {
	groups := AggregateByBranchAndAccount(statisticRecords)
	var names []string
	for _, g := range groups {
		names = append(names, g.Name)
	}
	expected := []string{"A / Equip", "A / Veículos", "B / Equip"}
	if diff := cmp.Diff(expected, names); diff != "" {
		t.Errorf("names mismatch (-expected +got):\n%s", diff)
	}
	if groups[2].Count != 2 || !groups[2].UpdatedValue.Equal(dec("110.5")) {
		t.Errorf("unexpected B / Equip group %+v", groups[2])
	}
}

func TestAggregate_SumsMatchSummary(t *testing.T) {
	summary := Summarize(statisticRecords)
	for _, kind := range []AggregationKind{AggregateBranch, AggregateAccount, AggregateBranchAndAccount} {
		var total Totals
		for _, g := range Aggregate(statisticRecords, kind) {
			total.Count += g.Count
			total.UpdatedValue = total.UpdatedValue.Add(g.UpdatedValue)
			total.ResidualValue = total.ResidualValue.Add(g.ResidualValue)
		}
		if total.Count != summary.Count || !total.UpdatedValue.Equal(summary.UpdatedValue) || !total.ResidualValue.Equal(summary.ResidualValue) {
			t.Errorf("%s: groups total %+v differs from summary %+v", kind, total, summary)
		}
	}
	if summary.Count != 4 || !summary.ResidualValue.Equal(dec("970.6")) {
		t.Errorf("unexpected summary %+v", summary)
	}
	if empty := Summarize(nil); empty.Count != 0 || !empty.UpdatedValue.IsZero() {
		t.Errorf("expected zero summary, got %+v", empty)
	}
}

func TestParseAggregationKind(t *testing.T) {
	for _, s := range []string{"branch", "account", "branch-account"} {
		kind, err := ParseAggregationKind(s)
		if err != nil || string(kind) != s {
			t.Errorf("ParseAggregationKind(%q) = %q, %v", s, kind, err)
		}
	}
	_, err := ParseAggregationKind("month")
	checkErrorContainsSubstring(t, err, "unknown aggregation 'month'")
}

func TestDumpAggregates(t *testing.T) {
	i18n, err := NewI18n("en")
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	if err := DumpAggregates(&sb, &Dataset{Records: statisticRecords}, i18n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report := sb.String()
	for _, expected := range []string{
		"Records: 4. Updated value: 1160.60. Accumulated depreciation: 190.00. Residual value: 970.60.",
		"Aggregates by branch\n",
		"Aggregates by account description\n",
		"Aggregates by branch and account\n",
		"records, updated 1050.10, accumulated 150.00, residual 900.10",
		"A / Veículos",
	} {
		if !strings.Contains(report, expected) {
			t.Errorf("expected report to contain %q, got:\n%s", expected, report)
		}
	}
}
