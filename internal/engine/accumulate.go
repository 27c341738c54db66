package engine

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// DebtMap holds directed raw debts keyed "debtor:creditor". Both directions
// of a pair may accumulate independently; netting collapses them later.
type DebtMap map[string]decimal.Decimal

func debtKey(debtor, creditor models.UserID) string {
	return string(debtor) + ":" + string(creditor)
}

func splitDebtKey(key string) (debtor, creditor models.UserID) {
	d, c, _ := strings.Cut(key, ":")
	return models.UserID(d), models.UserID(c)
}

// AccumulateDebts folds group expenses into a debt map: for every expense,
// each non-payer participant's share accrues on the (participant, payer)
// edge. The fold is commutative, so input order never changes the result.
//
// Records that cannot be processed — settlement or personal flagged expenses
// that slipped past the caller's filter, expenses whose group is unknown or
// empty, expenses with no resolvable participants — are skipped, logged, and
// counted in the returned skip total. One bad record never aborts the fold.
func AccumulateDebts(expenses []models.Expense, groups []models.Group) (DebtMap, int) {
	membersByGroup := make(map[string][]models.UserID, len(groups))
	for _, g := range groups {
		membersByGroup[g.ID] = g.Members
	}

	debts := make(DebtMap)
	skipped := 0
	for i := range expenses {
		e := &expenses[i]
		if e.IsSettlement || e.IsPersonal {
			continue
		}

		members, ok := membersByGroup[e.GroupID]
		if e.GroupID == "" || !ok {
			slog.Warn("skipping expense with unresolved group",
				"expense_id", e.ID, "group_id", e.GroupID)
			skipped++
			continue
		}

		shares, err := SplitExpense(e, members)
		if err != nil {
			slog.Warn("skipping uncomputable expense", "expense_id", e.ID, "error", err)
			skipped++
			continue
		}

		for _, share := range shares {
			if share.Participant == e.PaidBy {
				continue
			}
			key := debtKey(share.Participant, e.PaidBy)
			debts[key] = debts[key].Add(share.Amount)
		}
	}
	return debts, skipped
}
