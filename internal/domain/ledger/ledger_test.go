// Package ledger defines the balance consistency rules of the wallet ledger.
package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/domain/entity"
)

func now() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDelta(t *testing.T) {
	t.Run("income is positive", func(t *testing.T) {
		got := Delta(entity.TransactionTypeIncome, dec("150.25"))
		if !got.Equal(dec("150.25")) {
			t.Errorf("expected 150.25, got %s", got)
		}
	})

	t.Run("expense is negative", func(t *testing.T) {
		got := Delta(entity.TransactionTypeExpense, dec("150.25"))
		if !got.Equal(dec("-150.25")) {
			t.Errorf("expected -150.25, got %s", got)
		}
	})
}

func TestApplyReverseRoundTrip(t *testing.T) {
	balance := dec("1000")

	cases := []struct {
		name   string
		txType entity.TransactionType
		amount decimal.Decimal
	}{
		{"income", entity.TransactionTypeIncome, dec("300")},
		{"expense", entity.TransactionTypeExpense, dec("49.99")},
		{"zero amount", entity.TransactionTypeExpense, decimal.Zero},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			applied := Apply(balance, tc.txType, tc.amount)
			restored := Reverse(applied, tc.txType, tc.amount)
			if !restored.Equal(balance) {
				t.Errorf("reverse did not undo apply: started %s, ended %s", balance, restored)
			}
		})
	}
}

func TestEditDelta(t *testing.T) {
	walletID := uuid.New()
	userID := uuid.New()
	categoryID := uuid.New()

	old := entity.NewTransaction(userID, walletID, categoryID, now(), "salary", dec("500"), entity.TransactionTypeIncome)

	t.Run("amount shrinks", func(t *testing.T) {
		updated := *old
		updated.Amount = dec("200")
		got := EditDelta(old, &updated)
		if !got.Equal(dec("-300")) {
			t.Errorf("expected -300, got %s", got)
		}
	})

	t.Run("type flips", func(t *testing.T) {
		updated := *old
		updated.Type = entity.TransactionTypeExpense
		got := EditDelta(old, &updated)
		if !got.Equal(dec("-1000")) {
			t.Errorf("expected -1000, got %s", got)
		}
	})
}

func TestSumMatchesAppliedBalance(t *testing.T) {
	walletID := uuid.New()
	userID := uuid.New()
	categoryID := uuid.New()

	txns := []*entity.Transaction{
		entity.NewTransaction(userID, walletID, categoryID, now(), "a", dec("1000"), entity.TransactionTypeIncome),
		entity.NewTransaction(userID, walletID, categoryID, now(), "b", dec("300"), entity.TransactionTypeExpense),
		entity.NewTransaction(userID, walletID, categoryID, now(), "c", dec("10"), entity.TransactionTypeExpense),
	}

	balance := decimal.Zero
	for _, txn := range txns {
		balance = Apply(balance, txn.Type, txn.Amount)
	}

	if !Sum(txns).Equal(balance) {
		t.Errorf("sum %s does not match applied balance %s", Sum(txns), balance)
	}
	if !balance.Equal(dec("690")) {
		t.Errorf("expected 690, got %s", balance)
	}
}
