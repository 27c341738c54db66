package engine

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// NetBalance is one surviving directed debt after netting, annotated with
// resolved display records for both parties.
type NetBalance struct {
	Amount   decimal.Decimal `json:"amount"`
	Debtor   models.UserInfo `json:"debtorInfo"`
	Creditor models.UserInfo `json:"creditorInfo"`
}

// pairID is a direction-independent identity for a pair of users, used to
// guarantee each pair is resolved exactly once regardless of map iteration
// order.
func pairID(a, b models.UserID) string {
	if b < a {
		a, b = b, a
	}
	return string(a) + ":" + string(b)
}

// NetDebts collapses every reciprocal pair of raw debts into at most one
// directed edge carrying the net amount. For each pair {A, B}:
//
//	net = raw(A→B) − raw(B→A)
//
// net > Epsilon emits "A owes B net"; net < −Epsilon emits "B owes A |net|";
// anything in between is considered settled and suppressed.
//
// Party display info is resolved from users; an unresolvable id falls back to
// a synthetic "Unknown User" record, or a "You" record when the id is the
// viewer's own.
func NetDebts(debts DebtMap, users map[models.UserID]models.UserInfo, viewer models.UserID) map[string]NetBalance {
	net := make(map[string]NetBalance)
	visited := make(map[string]struct{}, len(debts))

	for key, amount := range debts {
		debtor, creditor := splitDebtKey(key)
		pair := pairID(debtor, creditor)
		if _, done := visited[pair]; done {
			continue
		}
		visited[pair] = struct{}{}

		netAmount := amount.Sub(debts[debtKey(creditor, debtor)])
		switch {
		case netAmount.GreaterThan(Epsilon):
			net[key] = NetBalance{
				Amount:   netAmount,
				Debtor:   resolveUserInfo(debtor, users, viewer),
				Creditor: resolveUserInfo(creditor, users, viewer),
			}
		case netAmount.LessThan(Epsilon.Neg()):
			net[debtKey(creditor, debtor)] = NetBalance{
				Amount:   netAmount.Abs(),
				Debtor:   resolveUserInfo(creditor, users, viewer),
				Creditor: resolveUserInfo(debtor, users, viewer),
			}
		}
	}
	return net
}

func resolveUserInfo(id models.UserID, users map[models.UserID]models.UserInfo, viewer models.UserID) models.UserInfo {
	if info, ok := users[id]; ok {
		return info
	}
	username := "Unknown User"
	if id == viewer {
		username = "You"
	}
	return models.UserInfo{ID: id, Username: username}
}
