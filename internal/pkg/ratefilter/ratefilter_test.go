package ratefilter

import "testing"

func TestPredicatesEmptyFilterSet(t *testing.T) {
	if preds := Predicates(FilterSet{}); len(preds) != 0 {
		t.Fatalf("expected no predicates for empty filter set, got %d", len(preds))
	}
	if !(FilterSet{}).IsEmpty() {
		t.Fatalf("expected empty filter set to report IsEmpty")
	}
}

func TestPredicatesServiceCategoryNormalized(t *testing.T) {
	preds := Predicates(FilterSet{ServiceCategory: "  Home Health  "})
	if len(preds) != 1 {
		t.Fatalf("expected 1 predicate, got %d", len(preds))
	}
	if preds[0].Expr != "LOWER(TRIM(service_category)) = ?" {
		t.Fatalf("unexpected expr: %s", preds[0].Expr)
	}
	if got := preds[0].Args[0]; got != "home health" {
		t.Fatalf("expected normalized arg, got %v", got)
	}
}

func TestPredicatesExactMatchFields(t *testing.T) {
	tests := []struct {
		name string
		f    FilterSet
		expr string
		arg  string
	}{
		{name: "state", f: FilterSet{State: "Texas"}, expr: "state = ?", arg: "Texas"},
		{name: "serviceCode", f: FilterSet{ServiceCode: "T1019"}, expr: "service_code = ?", arg: "T1019"},
		{name: "serviceDescription", f: FilterSet{ServiceDescription: "Personal care"}, expr: "service_description = ?", arg: "Personal care"},
		{name: "program", f: FilterSet{Program: "Medicaid"}, expr: "program = ?", arg: "Medicaid"},
		{name: "locationRegion", f: FilterSet{LocationRegion: "Statewide"}, expr: "location_region = ?", arg: "Statewide"},
		{name: "providerType", f: FilterSet{ProviderType: "Agency"}, expr: "provider_type = ?", arg: "Agency"},
	}

	for _, tt := range tests {
		preds := Predicates(tt.f)
		if len(preds) != 1 {
			t.Fatalf("%s: expected 1 predicate, got %d", tt.name, len(preds))
		}
		if preds[0].Expr != tt.expr {
			t.Fatalf("%s: expected expr %q, got %q", tt.name, tt.expr, preds[0].Expr)
		}
		if preds[0].Args[0] != tt.arg {
			t.Fatalf("%s: expected arg %q, got %v", tt.name, tt.arg, preds[0].Args[0])
		}
	}
}

func TestPredicatesModifierSpansAllFourColumns(t *testing.T) {
	preds := Predicates(FilterSet{Modifier: "U1"})
	if len(preds) != 1 {
		t.Fatalf("expected 1 predicate, got %d", len(preds))
	}
	want := "(modifier_1 = ? OR modifier_2 = ? OR modifier_3 = ? OR modifier_4 = ?)"
	if preds[0].Expr != want {
		t.Fatalf("expected expr %q, got %q", want, preds[0].Expr)
	}
	if len(preds[0].Args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(preds[0].Args))
	}
	for i, a := range preds[0].Args {
		if a != "U1" {
			t.Fatalf("arg %d: expected U1, got %v", i, a)
		}
	}
}

func TestPredicatesDateRangeRequiresBothBounds(t *testing.T) {
	if preds := Predicates(FilterSet{StartDate: "2024-01-01"}); len(preds) != 0 {
		t.Fatalf("start date alone must apply no predicate, got %d", len(preds))
	}
	if preds := Predicates(FilterSet{EndDate: "2024-12-31"}); len(preds) != 0 {
		t.Fatalf("end date alone must apply no predicate, got %d", len(preds))
	}
	if preds := Predicates(FilterSet{StartDate: "not-a-date", EndDate: "2024-12-31"}); len(preds) != 0 {
		t.Fatalf("malformed start date must apply no predicate, got %d", len(preds))
	}

	preds := Predicates(FilterSet{StartDate: "2024-01-01", EndDate: "2024-12-31"})
	if len(preds) != 1 {
		t.Fatalf("expected 1 predicate for a full range, got %d", len(preds))
	}
	if preds[0].Expr != "rate_effective_date BETWEEN ? AND ?" {
		t.Fatalf("unexpected expr: %s", preds[0].Expr)
	}
}

func TestPredicatesCombineConjunctively(t *testing.T) {
	preds := Predicates(FilterSet{
		ServiceCategory: "Behavioral Health",
		State:           "Ohio",
		Modifier:        "HQ",
		StartDate:       "2023-07-01",
		EndDate:         "2024-06-30",
	})
	if len(preds) != 4 {
		t.Fatalf("expected 4 predicates, got %d", len(preds))
	}
}
