package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// Epsilon is the threshold below which a balance counts as settled. Amounts
// whose magnitude falls under it are suppressed rather than reported.
var Epsilon = decimal.New(1, -2) // 0.01 in minor units

// MalformedExpenseError reports an expense that cannot yield a deterministic
// per-person share. Callers skip the record and continue.
type MalformedExpenseError struct {
	ExpenseID string
	Reason    string
}

func (e *MalformedExpenseError) Error() string {
	return fmt.Sprintf("malformed expense %s: %s", e.ExpenseID, e.Reason)
}

// Share is one participant's owed portion of a single expense.
type Share struct {
	Participant models.UserID
	Amount      decimal.Decimal
}

// resolveParticipants derives the effective participant set for an expense:
// the explicit split list filtered to current group members, falling back to
// the entire membership when the filter leaves nothing, with the payer always
// included. A group with no members resolves to nil: the payer alone cannot
// make the expense computable. Order follows first appearance; duplicates are
// dropped.
func resolveParticipants(e *models.Expense, members []models.UserID) []models.UserID {
	memberSet := make(map[models.UserID]struct{}, len(members))
	for _, m := range members {
		memberSet[m] = struct{}{}
	}

	var candidates []models.UserID
	for _, id := range e.SplitAmong {
		if _, ok := memberSet[id]; ok {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, members...)
	}
	if len(candidates) == 0 {
		return nil
	}
	candidates = append(candidates, e.PaidBy)

	seen := make(map[models.UserID]struct{}, len(candidates))
	participants := candidates[:0]
	for _, id := range candidates {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		participants = append(participants, id)
	}
	return participants
}

// SplitExpense computes each participant's owed share of one expense, given
// the group's member snapshot at computation time. Every participant owes
// amount/n; the payer is always part of the participant set.
//
// An expense whose participant set resolves empty (a group with no members)
// is not computable and yields a MalformedExpenseError.
func SplitExpense(e *models.Expense, members []models.UserID) ([]Share, error) {
	participants := resolveParticipants(e, members)
	if len(participants) == 0 {
		return nil, &MalformedExpenseError{ExpenseID: e.ID, Reason: "no resolvable participants"}
	}

	perPerson := e.Amount.Div(decimal.NewFromInt(int64(len(participants))))
	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{Participant: p, Amount: perPerson}
	}
	return shares, nil
}
