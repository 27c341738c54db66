package models

import "github.com/shopspring/decimal"

// SettlementStatus is the lifecycle state of a settlement.
type SettlementStatus string

const (
	// SettlementPending is the initial state: the debtor claims to have paid.
	SettlementPending SettlementStatus = "pending"
	// SettlementCompleted means the creditor acknowledged the payment.
	// Only completed settlements affect balances.
	SettlementCompleted SettlementStatus = "completed"
	// SettlementRejected means the creditor disputed the claim.
	SettlementRejected SettlementStatus = "rejected"
)

// Settlement represents a claim that a debtor paid a creditor outside the
// system. It is created pending and transitions exactly once to completed or
// rejected, by the creditor. Both terminal states are final.
//
// No money moves here: a settlement is an attestation of an event that already
// happened out-of-band.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group the settlement relates to, if any.
	GroupID string

	// CreditorID is the user who is owed and acknowledges the payment.
	CreditorID UserID

	// DebtorID is the user who owed and claims to have paid.
	DebtorID UserID

	// Amount is the positive settled amount.
	Amount decimal.Decimal

	// Status is the lifecycle state.
	Status SettlementStatus

	// Description is an optional note from the debtor.
	Description string

	// RejectionReason is set when the creditor rejects the claim.
	RejectionReason string

	// CreatedAt is the Unix timestamp when the claim was recorded.
	CreatedAt int64

	// CompletedAt is the Unix timestamp of creditor acknowledgment, if any.
	CompletedAt int64

	// RejectedAt is the Unix timestamp of creditor rejection, if any.
	RejectedAt int64
}
