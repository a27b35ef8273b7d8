// Package db carries the shared gorm handle helpers and the context-bound
// transaction plumbing used by the repository layer.
package db

import (
	"context"

	"gorm.io/gorm"
)

// txKey keys the active *gorm.DB transaction inside a context.
type txKey struct{}

// TransactionManager wraps a gorm handle and runs callbacks atomically.
// Repositories called inside the callback pick the transaction out of the
// context, so a single commit covers every write of a use case.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction opens a transaction, stashes it in the context handed
// to fn, and commits when fn returns nil. Any error rolls everything back.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// GetTx resolves the handle for the current context: the in-flight
// transaction when one is open, the plain connection otherwise.
func (tm *TransactionManager) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return tm.db.WithContext(ctx)
}

// GetTxFromContext is the repository-side counterpart of GetTx for code
// that holds its own *gorm.DB instead of a TransactionManager.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
