package db

import (
	"context"

	"gorm.io/gorm"
)

type TxContextKey struct{}

type gormTransactor struct {
	db *gorm.DB
}

func NewGormTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// gorm rolls back when fn returns an error
		return fn(context.WithValue(ctx, TxContextKey{}, tx))
	})
}

// FromContext returns the transaction carried by ctx, or fallback when the
// call is not transactional.
func FromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
