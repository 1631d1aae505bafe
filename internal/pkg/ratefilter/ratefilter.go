// Package ratefilter turns the dashboard's optional search criteria into the
// conjunctive predicate list applied to the master rate table. The builder is
// pure so the predicate shapes can be tested without a database; the GORM
// repository chains the fragments onto its queries.
package ratefilter

import (
	"strings"
	"time"
)

// FilterSet holds the currently applied criteria. Empty string means unset;
// unset criteria impose no constraint.
type FilterSet struct {
	ServiceCategory    string
	State              string
	ServiceCode        string
	ServiceDescription string
	Program            string
	LocationRegion     string
	Modifier           string
	ProviderType       string
	StartDate          string
	EndDate            string
}

// Predicate is one SQL fragment combined with AND against the others.
type Predicate struct {
	Expr string
	Args []interface{}
}

const dateLayout = "2006-01-02"

// Predicates builds the conjunctive predicate list for f.
//
// Comparison is case- and whitespace-insensitive for the service category,
// exact for every other field. A single modifier value matches any of the
// four modifier columns. The date range is inclusive at both bounds and only
// applied when both dates are supplied and parse as ISO dates.
func Predicates(f FilterSet) []Predicate {
	var preds []Predicate

	if v := strings.TrimSpace(f.ServiceCategory); v != "" {
		preds = append(preds, Predicate{
			Expr: "LOWER(TRIM(service_category)) = ?",
			Args: []interface{}{strings.ToLower(v)},
		})
	}
	if v := strings.TrimSpace(f.State); v != "" {
		preds = append(preds, Predicate{Expr: "state = ?", Args: []interface{}{v}})
	}
	if v := strings.TrimSpace(f.ServiceCode); v != "" {
		preds = append(preds, Predicate{Expr: "service_code = ?", Args: []interface{}{v}})
	}
	if v := strings.TrimSpace(f.ServiceDescription); v != "" {
		preds = append(preds, Predicate{Expr: "service_description = ?", Args: []interface{}{v}})
	}
	if v := strings.TrimSpace(f.Program); v != "" {
		preds = append(preds, Predicate{Expr: "program = ?", Args: []interface{}{v}})
	}
	if v := strings.TrimSpace(f.LocationRegion); v != "" {
		preds = append(preds, Predicate{Expr: "location_region = ?", Args: []interface{}{v}})
	}
	if v := strings.TrimSpace(f.Modifier); v != "" {
		preds = append(preds, Predicate{
			Expr: "(modifier_1 = ? OR modifier_2 = ? OR modifier_3 = ? OR modifier_4 = ?)",
			Args: []interface{}{v, v, v, v},
		})
	}
	if v := strings.TrimSpace(f.ProviderType); v != "" {
		preds = append(preds, Predicate{Expr: "provider_type = ?", Args: []interface{}{v}})
	}
	if start, end, ok := dateRange(f.StartDate, f.EndDate); ok {
		preds = append(preds, Predicate{
			Expr: "rate_effective_date BETWEEN ? AND ?",
			Args: []interface{}{start, end},
		})
	}

	return preds
}

// dateRange parses both bounds; a half-open or malformed range yields no
// predicate at all.
func dateRange(startDate, endDate string) (time.Time, time.Time, bool) {
	s := strings.TrimSpace(startDate)
	e := strings.TrimSpace(endDate)
	if s == "" || e == "" {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(dateLayout, e)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// IsEmpty reports whether no criterion is set.
func (f FilterSet) IsEmpty() bool {
	return len(Predicates(f)) == 0
}
