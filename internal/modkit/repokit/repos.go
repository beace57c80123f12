// Package repokit carries the shared seams between services and their repos
package repokit

import (
	"context"

	"exhume/internal/platform/store"
)

// Queryer is the read and write surface a bound repo queries through.
// Inside a transaction it is the transaction, outside it is the pool
type Queryer = store.RowQuerier

// TxRunner opens a transaction and runs a function against it
type TxRunner = store.TxRunner

// WithTx runs fn inside one transaction on tx.
// The transaction commits when fn returns nil and rolls back otherwise
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
