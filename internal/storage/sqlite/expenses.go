package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

// CreateExpense persists a new expense and its split list.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID any
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, amount, paid_by, group_id, category, is_personal, is_settlement, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Description, expense.Amount.String(), string(expense.PaidBy),
		groupID, expense.Category, expense.IsPersonal, expense.IsSettlement, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, participant := range expense.SplitAmong {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO expense_splits (expense_id, user_id) VALUES (?, ?)",
			expense.ID, string(participant),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GroupExpenses retrieves all non-personal, non-settlement expenses for the
// given groups, with their split lists.
func (s *SQLiteStore) GroupExpenses(ctx context.Context, groupIDs []string) ([]models.Expense, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(groupIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(groupIDs))
	for i, id := range groupIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, paid_by, IFNULL(group_id, ''), category, is_personal, is_settlement, created_at
		 FROM expenses
		 WHERE group_id IN (`+placeholders+`) AND is_personal = 0 AND is_settlement = 0
		 ORDER BY created_at`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query group expenses: %w", err)
	}
	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, err
	}

	for i := range expenses {
		splits, err := s.expenseSplits(ctx, expenses[i].ID)
		if err != nil {
			return nil, err
		}
		expenses[i].SplitAmong = splits
	}
	return expenses, nil
}

// PersonalExpenses retrieves the personal expenses paid by the user, newest
// first. Personal expenses have no split list.
func (s *SQLiteStore) PersonalExpenses(ctx context.Context, user models.UserID) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, paid_by, IFNULL(group_id, ''), category, is_personal, is_settlement, created_at
		 FROM expenses
		 WHERE paid_by = ? AND is_personal = 1
		 ORDER BY created_at DESC`,
		string(user),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query personal expenses: %w", err)
	}
	return scanExpenses(rows)
}

func scanExpenses(rows *sql.Rows) ([]models.Expense, error) {
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var (
			e      models.Expense
			amount string
		)
		if err := rows.Scan(&e.ID, &e.Description, &amount, &e.PaidBy, &e.GroupID,
			&e.Category, &e.IsPersonal, &e.IsSettlement, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expense amount for %s: %w", e.ID, err)
		}
		e.Amount = parsed
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

func (s *SQLiteStore) expenseSplits(ctx context.Context, expenseID string) ([]models.UserID, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM expense_splits WHERE expense_id = ? ORDER BY user_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense splits: %w", err)
	}
	defer rows.Close()

	var splits []models.UserID
	for rows.Next() {
		var id models.UserID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		splits = append(splits, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return splits, nil
}
