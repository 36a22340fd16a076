package db

import "context"

// Transactor runs fn with every repository call inside one transaction.
// Read-guard-write sequences (role changes and the like) go through this so
// the guard and the write see the same row state.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
