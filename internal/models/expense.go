package models

import "github.com/shopspring/decimal"

// Expense represents a recorded payment by one user, split among a set of
// participants. Expenses are created once and never mutated by the balance
// engine.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is the human-readable label for the expense.
	Description string

	// Amount is the positive, currency-agnostic amount paid.
	Amount decimal.Decimal

	// PaidBy is the user who paid.
	PaidBy UserID

	// SplitAmong lists the participants who owe a share. An empty list means
	// the expense is split across the whole group membership at computation
	// time.
	SplitAmong []UserID

	// GroupID is the group the expense belongs to. Empty means a personal
	// expense, which never enters balance calculations.
	GroupID string

	// Category is a free-form label used for the personal category
	// breakdown. Empty is reported as "Other".
	Category string

	// IsPersonal marks an expense that only affects the payer.
	IsPersonal bool

	// IsSettlement marks an expense record that mirrors a settlement; these
	// are excluded from debt accumulation.
	IsSettlement bool

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
