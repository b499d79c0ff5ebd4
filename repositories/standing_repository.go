package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
)

var ErrStandingNotFound = errors.New("standing not found")

// StandingRepository caches recomputed standings. The cache is write-through
// and keyed by team+division: every refresh replaces the division's rows
// wholesale, never patching individual columns.
type StandingRepository interface {
	ListByDivision(ctx context.Context, exec SQLExecutor, division models.Division) ([]*models.Standing, error)
	ReplaceDivision(ctx context.Context, division models.Division, standings []*models.Standing) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingRepository) ListByDivision(ctx context.Context, exec SQLExecutor, division models.Division) ([]*models.Standing, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, team_id, division, points, matches_played, matches_won, matches_lost, matches_halved,
		       holes_won, holes_lost, position, position_change, trend, updated_at
		FROM standings
		WHERE division = $1
		ORDER BY position ASC`
	rows, err := executor.QueryContext(ctx, query, division)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings for division %s: %w", division, err)
	}
	defer rows.Close()

	standings := make([]*models.Standing, 0)
	for rows.Next() {
		var s models.Standing
		if scanErr := rows.Scan(
			&s.ID, &s.TeamID, &s.Division, &s.Points, &s.MatchesPlayed, &s.MatchesWon,
			&s.MatchesLost, &s.MatchesHalved, &s.HolesWon, &s.HolesLost,
			&s.Position, &s.PositionChange, &s.Trend, &s.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan standing row: %w", scanErr)
		}
		standings = append(standings, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during standing rows iteration: %w", err)
	}
	return standings, nil
}

// ReplaceDivision overwrites the division's cached table inside one
// transaction so readers never observe a half-refreshed leaderboard.
func (r *postgresStandingRepository) ReplaceDivision(ctx context.Context, division models.Division, standings []*models.Standing) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceDivision failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM standings WHERE division = $1`, division); err != nil {
		tx.Rollback()
		return fmt.Errorf("ReplaceDivision failed to clear division %s: %w", division, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO standings
		    (team_id, division, points, matches_played, matches_won, matches_lost, matches_halved,
		     holes_won, holes_lost, position, position_change, trend, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ReplaceDivision failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, s := range standings {
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = now
		}
		if _, err = stmt.ExecContext(ctx,
			s.TeamID, division, s.Points, s.MatchesPlayed, s.MatchesWon, s.MatchesLost,
			s.MatchesHalved, s.HolesWon, s.HolesLost, s.Position, s.PositionChange,
			s.Trend, s.UpdatedAt,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("ReplaceDivision failed for team %d: %w", s.TeamID, err)
		}
	}

	return tx.Commit()
}
