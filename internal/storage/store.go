// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitledger/splitledger/internal/models"
)

// ErrUserNotFound reports a lookup for a user id that does not exist. It is
// the one fatal error class a balance computation surfaces.
var ErrUserNotFound = errors.New("user not found")

// ErrSettlementNotPending reports an attempt to transition a settlement that
// already reached a terminal state. Terminal states are final.
var ErrSettlementNotPending = errors.New("settlement is not pending")

// ErrNotCreditor reports a settlement transition attempted by someone other
// than the creditor. Only the counterparty may acknowledge or reject a claim.
var ErrNotCreditor = errors.New("only the creditor can resolve a settlement")

// Store defines the storage operations for expense ledger data.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer, and gives the balance engine a
// single point to fetch its snapshot from.
type Store interface {
	// CreateUser persists a new user. ID and CreatedAt are populated when
	// empty.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by id. Returns ErrUserNotFound when absent.
	GetUser(ctx context.Context, id models.UserID) (*models.User, error)

	// UsersByID resolves display info for a set of user ids. Unknown ids are
	// simply absent from the result, never an error.
	UsersByID(ctx context.Context, ids []models.UserID) (map[models.UserID]models.UserInfo, error)

	// CreateGroup persists a new group with its initial members.
	CreateGroup(ctx context.Context, group *models.Group) error

	// AddGroupMembers adds members to a group, ignoring ids already present.
	AddGroupMembers(ctx context.Context, groupID string, members []models.UserID) error

	// GroupsForUser retrieves every group the user is a member of, with the
	// current membership snapshot of each.
	GroupsForUser(ctx context.Context, user models.UserID) ([]models.Group, error)

	// CreateExpense persists a new expense with its split list.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GroupExpenses retrieves all non-personal, non-settlement expenses
	// belonging to the given groups.
	GroupExpenses(ctx context.Context, groupIDs []string) ([]models.Expense, error)

	// PersonalExpenses retrieves the personal expenses paid by the user,
	// newest first.
	PersonalExpenses(ctx context.Context, user models.UserID) ([]models.Expense, error)

	// CreateSettlement persists a new settlement in the pending state.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// CompleteSettlement transitions a pending settlement to completed.
	// Only the creditor may complete; pending is the only state this
	// transition is valid from.
	CompleteSettlement(ctx context.Context, id string, actor models.UserID) error

	// RejectSettlement transitions a pending settlement to rejected with an
	// optional reason, under the same rules as CompleteSettlement.
	RejectSettlement(ctx context.Context, id string, actor models.UserID, reason string) error

	// CompletedSettlementsForUser retrieves all completed settlements where
	// the user is debtor or creditor.
	CompletedSettlementsForUser(ctx context.Context, user models.UserID) ([]models.Settlement, error)

	// DataVersion returns an opaque token that changes whenever ledger data
	// changes. Callers use it to key cached balance summaries.
	DataVersion(ctx context.Context) (string, error)

	// Close releases any resources held by the store.
	Close() error
}
