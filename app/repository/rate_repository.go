package repository

import (
	"sort"
	"strings"

	"github.com/medirate/medirate/app/models"
	"github.com/medirate/medirate/internal/pkg/ratefilter"
	"gorm.io/gorm"
)

// facetColumns are the dimensions recomputed under the applied FilterSet so
// the dropdowns stay context-sensitive (picking a state narrows the service
// codes offered next, and so on).
var facetColumns = []string{
	"service_code",
	"service_description",
	"program",
	"location_region",
	"provider_type",
}

type rateRepository struct {
	db *gorm.DB
}

// NewRateRepository creates a rate repository backed by GORM.
func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) Query(f ratefilter.FilterSet) ([]models.RateRecord, error) {
	var records []models.RateRecord
	q := applyPredicates(r.db.Model(&models.RateRecord{}), f)
	err := q.Order("state ASC, service_code ASC").Find(&records).Error
	return records, err
}

func (r *rateRepository) FacetOptions(f ratefilter.FilterSet) (*RateFilterOptions, error) {
	options := &RateFilterOptions{}
	targets := map[string]*[]string{
		"service_code":        &options.ServiceCodes,
		"service_description": &options.ServiceDescriptions,
		"program":             &options.Programs,
		"location_region":     &options.LocationRegions,
		"provider_type":       &options.ProviderTypes,
	}

	for _, column := range facetColumns {
		values, err := r.distinctValues(column, f)
		if err != nil {
			return nil, err
		}
		*targets[column] = values
	}
	return options, nil
}

func (r *rateRepository) BootstrapOptions(serviceCategory string) (*BootstrapFilterOptions, error) {
	options := &BootstrapFilterOptions{}

	// The category facet always spans the whole table.
	categories, err := r.distinctValues("service_category", ratefilter.FilterSet{})
	if err != nil {
		return nil, err
	}
	options.ServiceCategories = categories

	// The state facet is narrowed only by an optional category choice.
	states, err := r.distinctValues("state", ratefilter.FilterSet{ServiceCategory: serviceCategory})
	if err != nil {
		return nil, err
	}
	options.States = states

	return options, nil
}

// distinctValues projects one column's distinct non-empty values under f,
// sorted lexicographically. Column names come from the fixed facet list, never
// from the request.
func (r *rateRepository) distinctValues(column string, f ratefilter.FilterSet) ([]string, error) {
	values := []string{}
	q := applyPredicates(r.db.Model(&models.RateRecord{}), f).
		Where(column+" IS NOT NULL AND "+column+" <> ''").
		Distinct().
		Order(column + " ASC")
	if err := q.Pluck(column, &values).Error; err != nil {
		return nil, err
	}
	return cleanFacetValues(values), nil
}

// cleanFacetValues drops blank entries and returns the rest sorted. The SQL
// already filters and orders, but collation quirks (trailing whitespace,
// case-insensitive ordering) must not leak into the facet payload.
func cleanFacetValues(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		cleaned = append(cleaned, v)
	}
	sort.Strings(cleaned)
	return cleaned
}

func applyPredicates(q *gorm.DB, f ratefilter.FilterSet) *gorm.DB {
	for _, p := range ratefilter.Predicates(f) {
		q = q.Where(p.Expr, p.Args...)
	}
	return q
}
