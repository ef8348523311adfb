package persistence

import (
	"fmt"
	"strings"

	"github.com/buildledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// active restricts a query to rows that have not been soft-deleted. Every
// read path in this package goes through it; there is no unscoped read.
func active(db *gorm.DB) *gorm.DB {
	return db.Where("deleted = ?", false)
}

// allowedOrderColumns is the whitelist for user-supplied sort columns.
// Anything else falls back to created_at to keep ORDER BY injection-safe.
var allowedOrderColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"code":       true,
	"number":     true,
	"date":       true,
	"period":     true,
	"status":     true,
	"title":      true,
	"subject":    true,
}

// softDelete flips the deleted flag on whatever the query matches. Callers
// pass an active()-scoped query so repeat deletes report not found.
func softDelete(query *gorm.DB) error {
	result := query.Update("deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies pagination and ordering from a shared.Filter.
func applyFilter(db *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if !allowedOrderColumns[orderBy] {
		orderBy = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}
	db = db.Order(fmt.Sprintf("%s %s", orderBy, dir))

	if filter.Page > 0 && filter.PageSize > 0 {
		db = db.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return db
}
