package engine

import (
	"testing"
	"time"

	"github.com/splitledger/splitledger/internal/models"
)

func TestCompute(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	midMonth := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC).Unix()
	group := models.Group{ID: "g1", Name: "Flat 4B", Members: []models.UserID{"alice", "bob", "carol"}}

	t.Run("full scenario", func(t *testing.T) {
		// Alice pays 150 with no explicit list, so it splits across the whole
		// group. Bob pays 60 over {bob, carol}. Carol settled her 50 with
		// Alice out-of-band and Alice acknowledged it.
		in := Input{
			UserID: "alice",
			Now:    now,
			Groups: []models.Group{group},
			GroupExpenses: []models.Expense{
				{ID: "e1", Amount: dec("150"), PaidBy: "alice", GroupID: "g1", CreatedAt: midMonth},
				{ID: "e2", Amount: dec("60"), PaidBy: "bob", GroupID: "g1",
					SplitAmong: []models.UserID{"bob", "carol"}, CreatedAt: midMonth},
			},
			Settlements: []models.Settlement{
				{ID: "s1", DebtorID: "carol", CreditorID: "alice", Amount: dec("50"),
					Status: models.SettlementCompleted},
			},
			Users: testUsers(),
		}

		summary := Compute(in)

		if len(summary.NetBalances) != 2 {
			t.Fatalf("got %d net edges, want 2: %v", len(summary.NetBalances), summary.NetBalances)
		}
		if edge := summary.NetBalances["bob:alice"]; !edge.Amount.Equal(dec("50")) {
			t.Errorf("bob:alice = %v, want 50", edge.Amount)
		}
		if edge := summary.NetBalances["carol:bob"]; !edge.Amount.Equal(dec("30")) {
			t.Errorf("carol:bob = %v, want 30", edge.Amount)
		}
		if _, ok := summary.NetBalances["carol:alice"]; ok {
			t.Error("carol:alice should be fully cleared by the settlement")
		}

		if !summary.TotalOwed.Equal(dec("0")) {
			t.Errorf("totalOwed = %v, want 0", summary.TotalOwed)
		}
		if !summary.TotalOwedToUser.Equal(dec("50")) {
			t.Errorf("totalOwedToUser = %v, want 50", summary.TotalOwedToUser)
		}

		// Alice participates only in e1; her share is 50.
		if !summary.GroupMonthlyTotal.Equal(dec("50")) {
			t.Errorf("groupMonthlyTotal = %v, want 50", summary.GroupMonthlyTotal)
		}
		if len(summary.GroupSummaries) != 1 {
			t.Fatalf("got %d group summaries, want 1", len(summary.GroupSummaries))
		}
		gs := summary.GroupSummaries[0]
		if gs.GroupID != "g1" || gs.GroupName != "Flat 4B" || gs.MemberCount != 3 {
			t.Errorf("unexpected group summary header: %+v", gs)
		}
		if !gs.TotalGroupSpendThisMonth.Equal(dec("210")) {
			t.Errorf("totalGroupSpendThisMonth = %v, want 210", gs.TotalGroupSpendThisMonth)
		}
		if !gs.YouPaidThisMonth.Equal(dec("150")) {
			t.Errorf("youPaidThisMonth = %v, want 150", gs.YouPaidThisMonth)
		}
		if !gs.YourShareThisMonth.Equal(dec("50")) {
			t.Errorf("yourShareThisMonth = %v, want 50", gs.YourShareThisMonth)
		}

		if summary.SkippedRecords != 0 {
			t.Errorf("skippedRecords = %d, want 0", summary.SkippedRecords)
		}
	})

	t.Run("monthly window boundary", func(t *testing.T) {
		firstOfMonth := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC).Unix()
		in := Input{
			UserID: "alice",
			Now:    now,
			Groups: []models.Group{group},
			GroupExpenses: []models.Expense{
				// Exactly midnight on the first: included.
				{ID: "in", Amount: dec("30"), PaidBy: "alice", GroupID: "g1", CreatedAt: firstOfMonth},
				// One second earlier: excluded.
				{ID: "out", Amount: dec("90"), PaidBy: "alice", GroupID: "g1", CreatedAt: firstOfMonth - 1},
			},
			Users: testUsers(),
		}

		summary := Compute(in)

		gs := summary.GroupSummaries[0]
		if !gs.TotalGroupSpendThisMonth.Equal(dec("30")) {
			t.Errorf("totalGroupSpendThisMonth = %v, want 30", gs.TotalGroupSpendThisMonth)
		}
		if !gs.YouPaidThisMonth.Equal(dec("30")) {
			t.Errorf("youPaidThisMonth = %v, want 30", gs.YouPaidThisMonth)
		}
		if !summary.GroupMonthlyTotal.Equal(dec("10")) {
			t.Errorf("groupMonthlyTotal = %v, want 10", summary.GroupMonthlyTotal)
		}
		// Debts ignore the window entirely: both expenses accrue.
		if edge := summary.NetBalances["bob:alice"]; !edge.Amount.Equal(dec("40")) {
			t.Errorf("bob:alice = %v, want 40", edge.Amount)
		}
	})

	t.Run("personal aggregates", func(t *testing.T) {
		in := Input{
			UserID: "alice",
			Now:    now,
			PersonalExpenses: []models.Expense{
				{ID: "p1", Amount: dec("12.50"), PaidBy: "alice", IsPersonal: true,
					Category: "Groceries", CreatedAt: midMonth},
				{ID: "p2", Amount: dec("7.50"), PaidBy: "alice", IsPersonal: true,
					Category: "Groceries", CreatedAt: midMonth},
				// Last month: outside the monthly total, still categorized.
				{ID: "p3", Amount: dec("100"), PaidBy: "alice", IsPersonal: true,
					CreatedAt: time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC).Unix()},
			},
			Users: testUsers(),
		}

		summary := Compute(in)

		if !summary.PersonalMonthlyTotal.Equal(dec("20")) {
			t.Errorf("personalMonthlyTotal = %v, want 20", summary.PersonalMonthlyTotal)
		}
		if !summary.Categories["Groceries"].Equal(dec("20")) {
			t.Errorf("categories[Groceries] = %v, want 20", summary.Categories["Groceries"])
		}
		if !summary.Categories["Other"].Equal(dec("100")) {
			t.Errorf("categories[Other] = %v, want 100", summary.Categories["Other"])
		}
	})

	t.Run("skipped records are surfaced", func(t *testing.T) {
		in := Input{
			UserID: "alice",
			Now:    now,
			Groups: []models.Group{group},
			GroupExpenses: []models.Expense{
				{ID: "ok", Amount: dec("30"), PaidBy: "alice", GroupID: "g1", CreatedAt: midMonth},
				{ID: "orphan", Amount: dec("99"), PaidBy: "alice", GroupID: "gone", CreatedAt: midMonth},
			},
			Settlements: []models.Settlement{
				{ID: "bad", DebtorID: "", CreditorID: "alice", Amount: dec("5"),
					Status: models.SettlementCompleted},
			},
			Users: testUsers(),
		}

		summary := Compute(in)

		if summary.SkippedRecords != 2 {
			t.Errorf("skippedRecords = %d, want 2", summary.SkippedRecords)
		}
		if edge := summary.NetBalances["bob:alice"]; !edge.Amount.Equal(dec("10")) {
			t.Errorf("bob:alice = %v, want 10 from the valid expense", edge.Amount)
		}
	})

	t.Run("memberless group contributes nothing anywhere", func(t *testing.T) {
		in := Input{
			UserID: "alice",
			Now:    now,
			Groups: []models.Group{{ID: "g0", Name: "Ghost Town"}},
			GroupExpenses: []models.Expense{
				{ID: "e1", Amount: dec("90"), PaidBy: "alice", GroupID: "g0", CreatedAt: midMonth},
			},
			Users: testUsers(),
		}

		summary := Compute(in)

		if summary.SkippedRecords != 1 {
			t.Errorf("skippedRecords = %d, want 1", summary.SkippedRecords)
		}
		if len(summary.NetBalances) != 0 {
			t.Errorf("got net edges %v, want none", summary.NetBalances)
		}
		gs := summary.GroupSummaries[0]
		if !gs.TotalGroupSpendThisMonth.Equal(dec("0")) {
			t.Errorf("totalGroupSpendThisMonth = %v, want 0 for skipped expense", gs.TotalGroupSpendThisMonth)
		}
		if !gs.YouPaidThisMonth.Equal(dec("0")) {
			t.Errorf("youPaidThisMonth = %v, want 0 for skipped expense", gs.YouPaidThisMonth)
		}
	})

	t.Run("totals always agree with the listed edges", func(t *testing.T) {
		in := Input{
			UserID: "bob",
			Now:    now,
			Groups: []models.Group{group},
			GroupExpenses: []models.Expense{
				{ID: "e1", Amount: dec("150"), PaidBy: "alice", GroupID: "g1", CreatedAt: midMonth},
				{ID: "e2", Amount: dec("90"), PaidBy: "bob", GroupID: "g1", CreatedAt: midMonth},
			},
			Users: testUsers(),
		}

		summary := Compute(in)

		owed := dec("0")
		owedToUser := dec("0")
		for _, edge := range summary.NetBalances {
			if edge.Debtor.ID == "bob" {
				owed = owed.Add(edge.Amount)
			}
			if edge.Creditor.ID == "bob" {
				owedToUser = owedToUser.Add(edge.Amount)
			}
		}
		if !summary.TotalOwed.Equal(owed) {
			t.Errorf("totalOwed = %v, edges say %v", summary.TotalOwed, owed)
		}
		if !summary.TotalOwedToUser.Equal(owedToUser) {
			t.Errorf("totalOwedToUser = %v, edges say %v", summary.TotalOwedToUser, owedToUser)
		}
	})
}
