package engine

import (
	"testing"

	"github.com/splitledger/splitledger/internal/models"
)

func testUsers() map[models.UserID]models.UserInfo {
	return map[models.UserID]models.UserInfo{
		"alice": {ID: "alice", Username: "Alice", Email: "alice@example.com"},
		"bob":   {ID: "bob", Username: "Bob", Email: "bob@example.com"},
		"carol": {ID: "carol", Username: "Carol", Email: "carol@example.com"},
	}
}

func TestNetDebts(t *testing.T) {
	users := testUsers()

	t.Run("reciprocal edges collapse into one net edge", func(t *testing.T) {
		debts := DebtMap{
			"alice:bob": dec("100"),
			"bob:alice": dec("40"),
		}
		net := NetDebts(debts, users, "alice")

		if len(net) != 1 {
			t.Fatalf("got %d edges, want 1: %v", len(net), net)
		}
		edge, ok := net["alice:bob"]
		if !ok {
			t.Fatalf("missing alice:bob edge, got %v", net)
		}
		if !edge.Amount.Equal(dec("60")) {
			t.Errorf("amount = %v, want 60", edge.Amount)
		}
		if edge.Debtor.Username != "Alice" || edge.Creditor.Username != "Bob" {
			t.Errorf("unexpected parties: %+v", edge)
		}
	})

	t.Run("at most one direction survives per pair", func(t *testing.T) {
		debts := DebtMap{
			"alice:bob": dec("10"),
			"bob:alice": dec("70"),
			"bob:carol": dec("5"),
			"carol:bob": dec("5"),
		}
		net := NetDebts(debts, users, "alice")

		if _, ok := net["alice:bob"]; ok {
			t.Error("alice:bob should not survive netting")
		}
		edge, ok := net["bob:alice"]
		if !ok {
			t.Fatalf("missing bob:alice edge, got %v", net)
		}
		if !edge.Amount.Equal(dec("60")) {
			t.Errorf("amount = %v, want 60", edge.Amount)
		}
		if _, ok := net["bob:carol"]; ok {
			t.Error("fully netted bob/carol pair should be suppressed")
		}
		if _, ok := net["carol:bob"]; ok {
			t.Error("fully netted carol/bob pair should be suppressed")
		}
	})

	t.Run("amounts within epsilon are settled", func(t *testing.T) {
		debts := DebtMap{
			"alice:bob": dec("0.005"),
			"carol:bob": dec("0.01"),
		}
		net := NetDebts(debts, users, "alice")
		if len(net) != 0 {
			t.Errorf("got %v, want no edges", net)
		}
	})

	t.Run("negative raw edge flips direction", func(t *testing.T) {
		// Carol overpaid Alice by 30: the raw edge went negative and the net
		// view shows Alice owing Carol.
		debts := DebtMap{"carol:alice": dec("-30")}
		net := NetDebts(debts, users, "alice")

		edge, ok := net["alice:carol"]
		if !ok {
			t.Fatalf("missing alice:carol edge, got %v", net)
		}
		if !edge.Amount.Equal(dec("30")) {
			t.Errorf("amount = %v, want 30", edge.Amount)
		}
	})

	t.Run("unresolvable ids fall back to synthetic records", func(t *testing.T) {
		debts := DebtMap{
			"ghost:alice": dec("15"),
			"viewer:bob":  dec("20"),
		}
		net := NetDebts(debts, users, "viewer")

		ghost := net["ghost:alice"]
		if ghost.Debtor.Username != "Unknown User" {
			t.Errorf("ghost debtor username = %q, want %q", ghost.Debtor.Username, "Unknown User")
		}
		if ghost.Debtor.ID != "ghost" {
			t.Errorf("ghost debtor id = %q, want ghost", ghost.Debtor.ID)
		}
		viewer := net["viewer:bob"]
		if viewer.Debtor.Username != "You" {
			t.Errorf("viewer debtor username = %q, want %q", viewer.Debtor.Username, "You")
		}
	})
}
