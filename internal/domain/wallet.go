/**
 * @description
 * Wallet domain models. The balance is kept as a running value for O(1)
 * reads; every balance change appends exactly one Transaction in the same
 * logical operation, so the transaction list stays consistent with it.
 */
package domain

import "time"

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Transaction is one immutable wallet ledger entry. Entries are append-only;
// the list is held newest-first as a presentation convention.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// Wallet is the snapshot view returned to callers.
type Wallet struct {
	Balance      float64       `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}
