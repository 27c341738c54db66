// Package engine is the balance reconciliation core: it turns a snapshot of
// expenses and settlements into minimal net pairwise debts, monthly
// aggregates, and per-group summaries.
//
// The engine is a pure, synchronous computation over data already fetched
// into memory. It performs no I/O, holds no state between calls, and every
// run is a function of its Input alone, so concurrent computations for any
// number of users need no coordination.
package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// Input is the snapshot a computation runs over. The caller fetches each
// dataset exactly once and passes it here; the engine never re-queries
// anything mid-computation, so the result reflects the store at a single
// instant.
type Input struct {
	// UserID is the querying user.
	UserID models.UserID

	// Now anchors the monthly window. Injected for determinism.
	Now time.Time

	// Groups are the user's groups with their current member snapshots.
	Groups []models.Group

	// GroupExpenses are all non-personal, non-settlement expenses across the
	// user's groups.
	GroupExpenses []models.Expense

	// PersonalExpenses are the user's own personal expenses.
	PersonalExpenses []models.Expense

	// Settlements are the completed settlements touching the user.
	Settlements []models.Settlement

	// Users resolves display info for every id referenced above.
	Users map[models.UserID]models.UserInfo
}

// Summary is the immutable result of one balance computation.
type Summary struct {
	// NetBalances maps "<debtorId>:<creditorId>" to the single surviving
	// net edge for that pair.
	NetBalances map[string]NetBalance `json:"netBalances"`

	// GroupSummaries holds one month-to-date summary per group, ordered by
	// the user's share descending.
	GroupSummaries []GroupSummary `json:"groupSummaries"`

	// PersonalMonthlyTotal is what the user spent on personal expenses this
	// month.
	PersonalMonthlyTotal decimal.Decimal `json:"personalMonthlyTotal"`

	// GroupMonthlyTotal is the user's share of group spending this month.
	GroupMonthlyTotal decimal.Decimal `json:"groupMonthlyTotal"`

	// TotalOwed sums net edges where the user is the debtor.
	TotalOwed decimal.Decimal `json:"totalOwed"`

	// TotalOwedToUser sums net edges where the user is the creditor.
	TotalOwedToUser decimal.Decimal `json:"totalOwedToUser"`

	// Categories breaks personal spending down by category label.
	Categories map[string]decimal.Decimal `json:"categories"`

	// SkippedRecords counts malformed records dropped during the
	// computation. Anything above zero means the summary is complete except
	// for those records.
	SkippedRecords int `json:"skippedRecords"`
}

// Compute runs the full pipeline over one snapshot: split each expense,
// accumulate directed debts, apply completed settlements, net reciprocal
// pairs, and derive the monthly aggregates.
//
// Malformed records are skipped and counted, never fatal: the user always
// gets a balance view covering every record that could be processed.
func Compute(in Input) *Summary {
	debts, skipped := AccumulateDebts(in.GroupExpenses, in.Groups)
	skipped += ApplySettlements(debts, in.Settlements)
	netBalances := NetDebts(debts, in.Users, in.UserID)

	groupMonthlyTotal, groupSummaries := aggregateGroups(in.UserID, in.GroupExpenses, in.Groups, in.Now)
	personalMonthlyTotal, categories := aggregatePersonal(in.UserID, in.PersonalExpenses, in.Now)
	totalOwed, totalOwedToUser := netTotals(netBalances, in.UserID)

	return &Summary{
		NetBalances:          netBalances,
		GroupSummaries:       groupSummaries,
		PersonalMonthlyTotal: personalMonthlyTotal,
		GroupMonthlyTotal:    groupMonthlyTotal,
		TotalOwed:            totalOwed,
		TotalOwedToUser:      totalOwedToUser,
		Categories:           categories,
		SkippedRecords:       skipped,
	}
}
