package postgres

import (
	"fmt"

	"gorm.io/gorm"
)

// allowedSortColumns guards ORDER BY input; anything else falls back to the
// default column.
var allowedSortColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"title":        true,
	"attempted_at": true,
	"percentage":   true,
	"score":        true,
}

// applyPaginationAndSort applies sorting and pagination to a query.
// defaultSort is used when sortBy is empty or not an allowed column.
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder, defaultSort string, limit, offset int) *gorm.DB {
	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = defaultSort
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
