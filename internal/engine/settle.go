package engine

import (
	"log/slog"

	"github.com/splitledger/splitledger/internal/models"
)

// ApplySettlements subtracts each completed settlement's amount from the
// (debtor, creditor) edge, creating the entry at zero first when absent. A
// settlement larger than the outstanding debt drives the edge negative; that
// overpayment is kept, not clamped, and surfaces after netting as a debt in
// the opposite direction.
//
// The amount applies to the pair edge exactly as recorded: group membership
// is not re-validated against the settlement's group, matching how
// settlements behave once acknowledged.
//
// Settlements in a non-completed state or missing a party id are skipped and
// counted. Each settlement in the list is applied exactly once.
func ApplySettlements(debts DebtMap, settlements []models.Settlement) int {
	skipped := 0
	for i := range settlements {
		s := &settlements[i]
		if s.Status != models.SettlementCompleted {
			continue
		}
		if s.DebtorID == "" || s.CreditorID == "" {
			slog.Warn("skipping settlement with missing party",
				"settlement_id", s.ID, "debtor_id", s.DebtorID, "creditor_id", s.CreditorID)
			skipped++
			continue
		}
		key := debtKey(s.DebtorID, s.CreditorID)
		debts[key] = debts[key].Sub(s.Amount)
	}
	return skipped
}
