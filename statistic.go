package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
)

// Totals are sums of monetary columns of a set of records.
type Totals struct {
	Count                   int             `json:"count"`
	OriginalValue           decimal.Decimal `json:"originalValue"`
	UpdatedValue            decimal.Decimal `json:"updatedValue"`
	MonthlyDepreciation     decimal.Decimal `json:"monthlyDepreciation"`
	PeriodDepreciation      decimal.Decimal `json:"periodDepreciation"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulatedDepreciation"`
	ResidualValue           decimal.Decimal `json:"residualValue"`
}

// Add accounts one record.
func (t *Totals) Add(r AssetRecord) {
	t.Count++
	t.OriginalValue = t.OriginalValue.Add(r.OriginalValue)
	t.UpdatedValue = t.UpdatedValue.Add(r.UpdatedValue)
	t.MonthlyDepreciation = t.MonthlyDepreciation.Add(r.MonthlyDepreciation)
	t.PeriodDepreciation = t.PeriodDepreciation.Add(r.PeriodDepreciation)
	t.AccumulatedDepreciation = t.AccumulatedDepreciation.Add(r.AccumulatedDepreciation)
	t.ResidualValue = t.ResidualValue.Add(r.ResidualValue())
}

// Group is an aggregate of records with the same key.
type Group struct {
	// Name is a human readable key, "branch / account" for composite keys.
	Name               string `json:"name"`
	Branch             string `json:"branch,omitempty"`
	AccountDescription string `json:"accountDescription,omitempty"`
	Totals
}

// GroupList structure to sort groups by name ascending.
type GroupList []*Group

func (g GroupList) Len() int {
	return len(g)
}

func (g GroupList) Less(i, j int) bool {
	if g[i].Branch != g[j].Branch {
		return g[i].Branch < g[j].Branch
	}
	if g[i].AccountDescription != g[j].AccountDescription {
		return g[i].AccountDescription < g[j].AccountDescription
	}
	return g[i].Name < g[j].Name
}

func (g GroupList) Swap(i, j int) {
	g[i], g[j] = g[j], g[i]
}

// AggregationKind names grouping of records.
type AggregationKind string

const (
	AggregateBranch           AggregationKind = "branch"
	AggregateAccount          AggregationKind = "account"
	AggregateBranchAndAccount AggregationKind = "branch-account"
)

// ParseAggregationKind validates name of the grouping.
func ParseAggregationKind(s string) (AggregationKind, error) {
	switch kind := AggregationKind(s); kind {
	case AggregateBranch, AggregateAccount, AggregateBranchAndAccount:
		return kind, nil
	}
	return "", fmt.Errorf("unknown aggregation '%s', supported: %s, %s, %s",
		s, AggregateBranch, AggregateAccount, AggregateBranchAndAccount)
}

// Aggregate groups records by the kind.
func Aggregate(records []AssetRecord, kind AggregationKind) GroupList {
	switch kind {
	case AggregateAccount:
		return AggregateByAccountDescription(records)
	case AggregateBranchAndAccount:
		return AggregateByBranchAndAccount(records)
	}
	return AggregateByBranch(records)
}

// AggregateByBranch returns groups per branch sorted by branch.
func AggregateByBranch(records []AssetRecord) GroupList {
	return aggregate(records, func(r AssetRecord) Group {
		return Group{Name: r.Branch, Branch: r.Branch}
	})
}

// AggregateByAccountDescription returns groups per account description sorted by description.
func AggregateByAccountDescription(records []AssetRecord) GroupList {
	return aggregate(records, func(r AssetRecord) Group {
		return Group{Name: r.AccountDescription, AccountDescription: r.AccountDescription}
	})
}

// AggregateByBranchAndAccount returns groups per pair of branch and account description.
func AggregateByBranchAndAccount(records []AssetRecord) GroupList {
	return aggregate(records, func(r AssetRecord) Group {
		return Group{
			Name:               r.Branch + " / " + r.AccountDescription,
			Branch:             r.Branch,
			AccountDescription: r.AccountDescription,
		}
	})
}

func aggregate(records []AssetRecord, keyOf func(AssetRecord) Group) GroupList {
	type groupKey struct{ branch, account string }
	groups := make(map[groupKey]*Group)
	for _, r := range records {
		g := keyOf(r)
		key := groupKey{g.Branch, g.AccountDescription}
		group, ok := groups[key]
		if !ok {
			group = &g
			groups[key] = group
		}
		group.Add(r)
	}

	result := make(GroupList, 0, len(groups))
	for _, group := range groups {
		result = append(result, group)
	}
	sort.Sort(result)
	return result
}

// Summarize returns totals of all records.
func Summarize(records []AssetRecord) Totals {
	var totals Totals
	for _, r := range records {
		totals.Add(r)
	}
	return totals
}

// DumpAggregates writes text report with summary and aggregates by branch, account and both.
func DumpAggregates(w io.Writer, dataset *Dataset, i18n *I18n) error {
	totals := Summarize(dataset.Records)
	if _, err := fmt.Fprintln(w, i18n.T("Summary",
		"count", totals.Count,
		"updated", totals.UpdatedValue,
		"accumulated", totals.AccumulatedDepreciation,
		"residual", totals.ResidualValue,
	)); err != nil {
		return err
	}

	sections := []struct {
		title string
		kind  AggregationKind
	}{
		{"Aggregates by branch", AggregateBranch},
		{"Aggregates by account description", AggregateAccount},
		{"Aggregates by branch and account", AggregateBranchAndAccount},
	}
	for _, section := range sections {
		if _, err := fmt.Fprintf(w, "\n%s\n", i18n.T(section.title)); err != nil {
			return err
		}
		for _, group := range Aggregate(dataset.Records, section.kind) {
			line := i18n.T("Aggregate line",
				"name", group.Name,
				"count", group.Count,
				"updated", group.UpdatedValue,
				"accumulated", group.AccumulatedDepreciation,
				"residual", group.ResidualValue,
			)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
