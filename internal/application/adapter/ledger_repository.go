// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/dompetku/backend/internal/domain/entity"
)

// LedgerRepository is the single mutation path into the wallet ledger. Every
// method executes as one atomic store transaction: the posting rows and the
// wallet balance adjustments either all persist or none do. Concurrent
// mutations of the same wallet are serialized by row-level locks inside that
// transaction scope.
type LedgerRepository interface {
	// Post inserts a transaction and applies its balance effect to the wallet.
	Post(ctx context.Context, transaction *entity.Transaction) error

	// Unpost reverses a transaction's balance effect and deletes the row.
	Unpost(ctx context.Context, transaction *entity.Transaction) error

	// Repost replaces a posted transaction with an updated version: the old
	// effect is reversed on the old wallet and the new effect applied on the
	// (possibly different) new wallet. The two transactions must share an ID.
	Repost(ctx context.Context, old, updated *entity.Transaction) error

	// PostAll inserts a batch of transactions and applies their aggregated
	// balance effects (CSV import commit).
	PostAll(ctx context.Context, transactions []*entity.Transaction) error

	// PostTransfer posts the outgoing, incoming and optional fee legs of a
	// transfer. fee may be nil. The source wallet's balance is re-checked
	// against outgoing.Amount plus the fee inside the locked scope;
	// ErrInsufficientFunds aborts the whole posting.
	PostTransfer(ctx context.Context, outgoing, incoming, fee *entity.Transaction) error
}
