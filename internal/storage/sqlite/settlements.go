package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// CreateSettlement persists a new settlement in the pending state.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	settlement.Status = models.SettlementPending

	var groupID any
	if settlement.GroupID != "" {
		groupID = settlement.GroupID
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, creditor_id, debtor_id, amount, status, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, groupID, string(settlement.CreditorID), string(settlement.DebtorID),
		settlement.Amount.String(), string(settlement.Status), settlement.Description, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// CompleteSettlement acknowledges a pending settlement. Only the creditor may
// complete, and only from the pending state; the transition happens at most
// once.
func (s *SQLiteStore) CompleteSettlement(ctx context.Context, id string, actor models.UserID) error {
	return s.resolveSettlement(ctx, id, actor, models.SettlementCompleted, "")
}

// RejectSettlement disputes a pending settlement, under the same rules as
// CompleteSettlement.
func (s *SQLiteStore) RejectSettlement(ctx context.Context, id string, actor models.UserID, reason string) error {
	return s.resolveSettlement(ctx, id, actor, models.SettlementRejected, reason)
}

func (s *SQLiteStore) resolveSettlement(ctx context.Context, id string, actor models.UserID, to models.SettlementStatus, reason string) error {
	var creditor models.UserID
	var status models.SettlementStatus
	err := s.db.QueryRowContext(ctx,
		"SELECT creditor_id, status FROM settlements WHERE id = ?", id,
	).Scan(&creditor, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("settlement not found: %s", id)
	}
	if err != nil {
		return fmt.Errorf("failed to get settlement: %w", err)
	}
	if creditor != actor {
		return storage.ErrNotCreditor
	}
	if status != models.SettlementPending {
		return storage.ErrSettlementNotPending
	}

	now := time.Now().Unix()
	var result sql.Result
	switch to {
	case models.SettlementCompleted:
		result, err = s.db.ExecContext(ctx,
			"UPDATE settlements SET status = ?, completed_at = ? WHERE id = ? AND status = ?",
			string(to), now, id, string(models.SettlementPending),
		)
	case models.SettlementRejected:
		result, err = s.db.ExecContext(ctx,
			"UPDATE settlements SET status = ?, rejected_at = ?, rejection_reason = ? WHERE id = ? AND status = ?",
			string(to), now, reason, id, string(models.SettlementPending),
		)
	default:
		return fmt.Errorf("invalid settlement transition to %q", to)
	}
	if err != nil {
		return fmt.Errorf("failed to update settlement: %w", err)
	}

	// The status guard in the UPDATE makes the transition exactly-once even
	// under concurrent resolvers.
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check settlement update: %w", err)
	}
	if affected == 0 {
		return storage.ErrSettlementNotPending
	}
	return nil
}

// CompletedSettlementsForUser retrieves all completed settlements where the
// user is the debtor or the creditor.
func (s *SQLiteStore) CompletedSettlementsForUser(ctx context.Context, user models.UserID) ([]models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, IFNULL(group_id, ''), creditor_id, debtor_id, amount, status, description,
		        IFNULL(rejection_reason, ''), created_at, IFNULL(completed_at, 0), IFNULL(rejected_at, 0)
		 FROM settlements
		 WHERE status = ? AND (creditor_id = ? OR debtor_id = ?)
		 ORDER BY created_at`,
		string(models.SettlementCompleted), string(user), string(user),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements: %w", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var (
			st     models.Settlement
			amount string
		)
		if err := rows.Scan(&st.ID, &st.GroupID, &st.CreditorID, &st.DebtorID, &amount,
			&st.Status, &st.Description, &st.RejectionReason, &st.CreatedAt,
			&st.CompletedAt, &st.RejectedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse settlement amount for %s: %w", st.ID, err)
		}
		st.Amount = parsed
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}
