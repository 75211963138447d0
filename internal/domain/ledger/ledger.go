// Package ledger defines the balance consistency rules of the wallet ledger.
//
// Every mutation path (create, edit, delete, transfer, import) adjusts a
// wallet's cached balance through the functions in this package, so that the
// central invariant holds after every committed operation:
//
//	wallet.balance == sum(+amount for income, -amount for expense)
//
// over the wallet's live postings. The functions are pure; the persistence
// layer is responsible for executing them inside one atomic store transaction.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/domain/entity"
)

// Delta returns the signed balance effect of a posting: positive for income,
// negative for expense. Amount is expected non-negative.
func Delta(transactionType entity.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if transactionType == entity.TransactionTypeIncome {
		return amount
	}
	return amount.Neg()
}

// Apply returns the balance after posting a transaction of the given type and
// amount.
func Apply(balance decimal.Decimal, transactionType entity.TransactionType, amount decimal.Decimal) decimal.Decimal {
	return balance.Add(Delta(transactionType, amount))
}

// Reverse returns the balance after undoing a previously applied posting. It
// is the exact inverse of Apply and is used before deleting a transaction or
// before overwriting its fields during an edit.
func Reverse(balance decimal.Decimal, transactionType entity.TransactionType, amount decimal.Decimal) decimal.Decimal {
	return balance.Sub(Delta(transactionType, amount))
}

// EditDelta returns the net balance effect on a single wallet of replacing
// the old posting with the new one. It only applies when both postings target
// the same wallet; a wallet change must be handled as Reverse on the old
// wallet and Apply on the new one.
func EditDelta(old, updated *entity.Transaction) decimal.Decimal {
	return Delta(updated.Type, updated.Amount).Sub(Delta(old.Type, old.Amount))
}

// Sum folds a set of postings into their signed total, the reference value
// the cached wallet balance must match.
func Sum(transactions []*entity.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(Delta(t.Type, t.Amount))
	}
	return total
}
