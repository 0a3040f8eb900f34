package mysql

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds SELECT ... FOR UPDATE. SQLite drops the clause since it locks the whole database.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// first returns nil and gorm.ErrRecordNotFound when nothing matches.
func first[T any](q *gorm.DB) (*T, error) {
	var out T
	if err := q.First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// sum scans COALESCE(SUM(col), 0) into an exact decimal.
func sum(q *gorm.DB, col string) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := q.Select("COALESCE(SUM(" + col + "), 0)").Row()
	if err := row.Err(); err != nil {
		return decimal.Zero, err
	}
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
