// Package remote persists the authoritative per-user meal plan document.
package remote

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Zhengdong-uga/meal4u-sub000/internal/plan"
)

// SQLiteStore keeps one plan document per user. Writes replace the whole
// document: last write wins, no field-level merge.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore over an existing connection.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// FetchPlan retrieves a user's plan document. Absent users and empty
// documents yield (nil, nil).
func (s *SQLiteStore) FetchPlan(ctx context.Context, userID string) (plan.MealPlan, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT plan_data FROM meal_plans WHERE user_id = ?`, userID,
	).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch plan for user %s: %w", userID, err)
	}

	var p plan.MealPlan
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan for user %s: %w", userID, err)
	}
	if len(p) == 0 {
		return nil, nil
	}
	return p, nil
}

// WritePlan overwrites a user's plan document with the full serialized
// plan.
func (s *SQLiteStore) WritePlan(ctx context.Context, userID string, p plan.MealPlan) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO meal_plans (user_id, plan_data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET plan_data = excluded.plan_data, updated_at = excluded.updated_at`,
		userID, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write plan for user %s: %w", userID, err)
	}
	return nil
}
