package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// GroupSummary is one group's month-to-date view for the querying user.
type GroupSummary struct {
	GroupID                  string          `json:"groupId"`
	GroupName                string          `json:"groupName"`
	MemberCount              int             `json:"memberCount"`
	YourShareThisMonth       decimal.Decimal `json:"yourShareThisMonth"`
	TotalGroupSpendThisMonth decimal.Decimal `json:"totalGroupSpendThisMonth"`
	YouPaidThisMonth         decimal.Decimal `json:"youPaidThisMonth"`
}

// monthWindow is the half-open interval [first day of now's month, now),
// in Unix seconds. now is injected, never read from a global clock.
type monthWindow struct {
	start int64
	end   int64
}

func currentMonthWindow(now time.Time) monthWindow {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return monthWindow{start: first.Unix(), end: now.Unix()}
}

func (w monthWindow) contains(unix int64) bool {
	return unix >= w.start && unix < w.end
}

// aggregateGroups walks the group expenses once and derives the user's group
// monthly total plus a per-group summary: total spend, what the user paid,
// and the user's share, all within the current month window. Summaries are
// ordered by the user's share, largest first.
//
// The skip rules must stay identical to AccumulateDebts so both views are
// derived from the same effective record set; a record dropped there is
// dropped here too, and is only counted as skipped once, by AccumulateDebts.
func aggregateGroups(user models.UserID, expenses []models.Expense, groups []models.Group, now time.Time) (decimal.Decimal, []GroupSummary) {
	window := currentMonthWindow(now)

	summaries := make(map[string]*GroupSummary, len(groups))
	membersByGroup := make(map[string][]models.UserID, len(groups))
	for _, g := range groups {
		membersByGroup[g.ID] = g.Members
		summaries[g.ID] = &GroupSummary{
			GroupID:     g.ID,
			GroupName:   g.Name,
			MemberCount: len(g.Members),
		}
	}

	var groupMonthlyTotal decimal.Decimal
	for i := range expenses {
		e := &expenses[i]
		if e.IsSettlement || e.IsPersonal {
			continue
		}
		members, ok := membersByGroup[e.GroupID]
		if !ok {
			continue
		}
		shares, err := SplitExpense(e, members)
		if err != nil {
			continue
		}
		if !window.contains(e.CreatedAt) {
			continue
		}

		var yourShare decimal.Decimal
		isParticipant := false
		for _, share := range shares {
			if share.Participant == user {
				isParticipant = true
				yourShare = share.Amount
				break
			}
		}

		summary := summaries[e.GroupID]
		summary.TotalGroupSpendThisMonth = summary.TotalGroupSpendThisMonth.Add(e.Amount)
		if isParticipant {
			summary.YourShareThisMonth = summary.YourShareThisMonth.Add(yourShare)
			groupMonthlyTotal = groupMonthlyTotal.Add(yourShare)
		}
		if e.PaidBy == user {
			summary.YouPaidThisMonth = summary.YouPaidThisMonth.Add(e.Amount)
		}
	}

	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, *summaries[g.ID])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].YourShareThisMonth.GreaterThan(out[j].YourShareThisMonth)
	})
	return groupMonthlyTotal, out
}

// aggregatePersonal sums the user's personal expenses: the monthly total over
// the window, and a category breakdown over the whole set. Expenses without a
// category fall under "Other".
func aggregatePersonal(user models.UserID, expenses []models.Expense, now time.Time) (decimal.Decimal, map[string]decimal.Decimal) {
	window := currentMonthWindow(now)

	var monthlyTotal decimal.Decimal
	categories := make(map[string]decimal.Decimal)
	for i := range expenses {
		e := &expenses[i]
		if !e.IsPersonal || e.PaidBy != user {
			continue
		}
		if window.contains(e.CreatedAt) {
			monthlyTotal = monthlyTotal.Add(e.Amount)
		}
		category := e.Category
		if category == "" {
			category = "Other"
		}
		categories[category] = categories[category].Add(e.Amount)
	}
	return monthlyTotal, categories
}

// netTotals scans the netted edges and sums what the user owes and is owed.
// Both totals come from the same net map the summary reports, so they always
// agree with the listed edges.
func netTotals(net map[string]NetBalance, user models.UserID) (totalOwed, totalOwedToUser decimal.Decimal) {
	for _, balance := range net {
		if balance.Debtor.ID == user {
			totalOwed = totalOwed.Add(balance.Amount)
		}
		if balance.Creditor.ID == user {
			totalOwedToUser = totalOwedToUser.Add(balance.Amount)
		}
	}
	return totalOwed, totalOwedToUser
}
