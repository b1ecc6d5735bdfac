package models

import (
	"time"
)

// TxKind classifies a transaction by what produced it.
type TxKind string

const (
	TxKindIncome           TxKind = "income"
	TxKindExpense          TxKind = "expense"
	TxKindSubscription     TxKind = "subscription"
	TxKindFee              TxKind = "fee"
	TxKindTransferInternal TxKind = "transfer_internal"
	TxKindTransferExternal TxKind = "transfer_external"
	TxKindRefund           TxKind = "refund"
)

// SuspiciousType labels the anomaly classification assigned to a flagged
// transaction.
type SuspiciousType string

const (
	SuspiciousDuplicate  SuspiciousType = "duplicate"
	SuspiciousOvercharge SuspiciousType = "overcharge"
	SuspiciousUnexpected SuspiciousType = "unexpected"
)

// Transaction is the atomic output unit of the generator: one ledger-style
// record on one calendar date. Amounts are dollars, positive for inflows.
//
// A transaction is created once by the engine (or by the anomaly injector)
// and never mutated afterward, with two deliberate exceptions: the injector
// may replace one record to raise its amount (overcharge), and the detector
// adds the suspicion fields. After post-processing completes the whole
// sequence is immutable.
type Transaction struct {
	// Deterministic identifier; see generator.MakeID for the layout.
	ID string `json:"id"`

	// Calendar date of the charge. Only the date portion is meaningful;
	// time-of-day is always midnight UTC.
	Date time.Time `json:"date"`

	// Signed amount in dollars. Positive means money in.
	Amount float64 `json:"amount"`

	// Statement description, formatted per category (card-present, ACH,
	// or online style).
	Description string `json:"description"`

	Merchant string `json:"merchant"`
	Category string `json:"category"`
	Kind     TxKind `json:"kind"`

	// Owning account reference, e.g. the profile's primary bank.
	Account string `json:"account"`

	// Recurring marks fixed monthly bills; Subscription marks plan charges.
	Recurring    bool `json:"recurring,omitempty"`
	Subscription bool `json:"subscription,omitempty"`

	// Suspicion fields, set only by the anomaly injector or detector.
	Suspicious      bool           `json:"suspicious,omitempty"`
	SuspiciousType  SuspiciousType `json:"suspicious_type,omitempty"`
	SuspicionReason string         `json:"suspicion_reason,omitempty"`

	// ParentID references the original charge when this record is flagged
	// as a duplicate of it.
	ParentID string `json:"parent_id,omitempty"`
}

// IsInflow returns true if this transaction adds money to the account.
func (t *Transaction) IsInflow() bool {
	return t.Amount > 0
}

// DayOfMonth returns the calendar day the charge landed on.
func (t *Transaction) DayOfMonth() int {
	return t.Date.Day()
}
