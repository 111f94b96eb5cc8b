package persistence

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortSpec whitelists the columns a list query may be ordered by.
// Columns are emitted as quoted identifiers, never as raw SQL.
type sortSpec struct {
	columns  map[string]bool
	fallback string
	tieDesc  bool // direction of the id tiebreaker
}

var (
	productSort = sortSpec{
		columns:  columnSet("id", "created_at", "updated_at", "sku", "name", "category", "unit_price", "reorder_level"),
		fallback: "created_at",
	}
	warehouseSort = sortSpec{
		columns:  columnSet("id", "created_at", "updated_at", "name", "location", "capacity"),
		fallback: "name",
	}
	orderSort = sortSpec{
		columns:  columnSet("id", "created_at", "updated_at", "schedule_date", "status", "done_at"),
		fallback: "created_at",
		tieDesc:  true,
	}
)

func columnSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// column returns field when it is whitelisted, the fallback column otherwise
func (s sortSpec) column(field string) string {
	if field = strings.TrimSpace(field); s.columns[field] {
		return field
	}
	return s.fallback
}

// apply orders query by field, then by id. Anything but "asc" sorts descending.
func (s sortSpec) apply(query *gorm.DB, field, dir string) *gorm.DB {
	desc := !strings.EqualFold(strings.TrimSpace(dir), "asc")
	return query.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: s.column(field)}, Desc: desc},
		{Column: clause.Column{Name: "id"}, Desc: s.tieDesc},
	}})
}
