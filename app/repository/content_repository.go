package repository

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// Admin mutations accept arbitrary column/value pairs, so every column name is
// checked against these per-table allow-lists before any SQL is built. Unknown
// tables or columns are rejected as validation errors, never interpolated.
var (
	ErrUnknownTable  = errors.New("repository: unknown content table")
	ErrUnknownColumn = errors.New("repository: column not mutable")
)

type contentTable struct {
	naturalKey     string
	mutableColumns map[string]struct{}
}

var contentTables = map[string]contentTable{
	"master_data": {
		mutableColumns: columnSet(
			"state", "service_category", "service_code", "service_description",
			"program", "location_region", "provider_type",
			"modifier_1", "modifier_1_details", "modifier_2", "modifier_2_details",
			"modifier_3", "modifier_3_details", "modifier_4", "modifier_4_details",
			"rate", "rate_effective_date", "rate_per_hour", "duration_unit",
		),
	},
	"provider_alerts": {
		naturalKey: "link",
		mutableColumns: columnSet(
			"state", "subject", "announcement_date", "service_lines", "link", "summary",
		),
	},
	"bills": {
		naturalKey: "url",
		mutableColumns: columnSet(
			"state", "bill_number", "name", "last_action", "action_date",
			"sponsors", "bill_progress", "url", "ai_summary", "service_lines",
		),
	},
	"comments_table": {
		mutableColumns: columnSet("bill_url", "user_email", "comment"),
	},
	"service_category_list": {
		mutableColumns: columnSet("categories"),
	},
	"code_definitions": {
		mutableColumns: columnSet("service_code", "definition"),
	},
}

func columnSet(columns ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return set
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a content repository backed by GORM.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) UpdateByID(table string, id uint, updates map[string]interface{}) error {
	meta, ok := contentTables[table]
	if !ok {
		return ErrUnknownTable
	}
	if len(updates) == 0 {
		return errors.New("repository: no columns to update")
	}
	for column := range updates {
		if _, ok := meta.mutableColumns[column]; !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, column)
		}
	}

	res := r.db.Table(table).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contentRepository) DeleteByID(table string, id uint) error {
	if _, ok := contentTables[table]; !ok {
		return ErrUnknownTable
	}
	res := r.db.Table(table).Where("id = ?", id).Delete(nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contentRepository) DeleteByNaturalKey(table string, key string) error {
	meta, ok := contentTables[table]
	if !ok {
		return ErrUnknownTable
	}
	if meta.naturalKey == "" {
		return fmt.Errorf("%w: %s has no natural key", ErrUnknownColumn, table)
	}
	res := r.db.Table(table).Where(meta.naturalKey+" = ?", key).Delete(nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MutableColumns lists the allow-listed columns of a table, sorted, for error
// responses. The second return reports whether the table exists.
func (r *contentRepository) MutableColumns(table string) ([]string, bool) {
	meta, ok := contentTables[table]
	if !ok {
		return nil, false
	}
	columns := make([]string, 0, len(meta.mutableColumns))
	for c := range meta.mutableColumns {
		columns = append(columns, c)
	}
	sort.Strings(columns)
	return columns, true
}
