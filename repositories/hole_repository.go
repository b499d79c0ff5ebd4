package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
)

var (
	ErrHoleNotFound    = errors.New("hole not found")
	ErrHoleSideInvalid = errors.New("invalid hole side")
)

// HoleSide names the per-side stroke column of a hole record.
type HoleSide string

const (
	HoleSideA HoleSide = "team_a"
	HoleSideB HoleSide = "team_b"
	HoleSideC HoleSide = "team_c"
)

type HoleRepository interface {
	CreateForMatch(ctx context.Context, exec SQLExecutor, matchID int, pars []int) error
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]models.Hole, error)
	// UpdateScore writes one side's stroke count for one hole. Each side is
	// its own column, so concurrent scorers on different sides never clobber
	// each other; the same side resolves last-write-wins.
	UpdateScore(ctx context.Context, exec SQLExecutor, matchID, number int, side HoleSide, strokes *int) error
	ClearByMatch(ctx context.Context, exec SQLExecutor, matchID int) error
}

type postgresHoleRepository struct {
	db *sql.DB
}

func NewPostgresHoleRepository(db *sql.DB) HoleRepository {
	return &postgresHoleRepository{db: db}
}

func (r *postgresHoleRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateForMatch seeds the match's 18 hole rows with their pars and no
// scores. pars must have one entry per hole, in hole order.
func (r *postgresHoleRepository) CreateForMatch(ctx context.Context, exec SQLExecutor, matchID int, pars []int) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO holes (match_id, number, par) VALUES ($1, $2, $3)`
	for i, par := range pars {
		if _, err := executor.ExecContext(ctx, query, matchID, i+1, par); err != nil {
			return fmt.Errorf("failed to create hole %d for match %d: %w", i+1, matchID, err)
		}
	}
	return nil
}

func (r *postgresHoleRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]models.Hole, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, match_id, number, par, team_a_score, team_b_score, team_c_score
		FROM holes
		WHERE match_id = $1
		ORDER BY number ASC`
	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holes for match %d: %w", matchID, err)
	}
	defer rows.Close()

	holes := make([]models.Hole, 0, 18)
	for rows.Next() {
		var h models.Hole
		if scanErr := rows.Scan(&h.ID, &h.MatchID, &h.Number, &h.Par, &h.TeamAScore, &h.TeamBScore, &h.TeamCScore); scanErr != nil {
			return nil, fmt.Errorf("failed to scan hole row: %w", scanErr)
		}
		holes = append(holes, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during hole rows iteration: %w", err)
	}
	return holes, nil
}

func (r *postgresHoleRepository) UpdateScore(ctx context.Context, exec SQLExecutor, matchID, number int, side HoleSide, strokes *int) error {
	executor := r.getExecutor(exec)

	var column string
	switch side {
	case HoleSideA:
		column = "team_a_score"
	case HoleSideB:
		column = "team_b_score"
	case HoleSideC:
		column = "team_c_score"
	default:
		return ErrHoleSideInvalid
	}

	// column comes from the switch above, never from caller input.
	query := fmt.Sprintf(`UPDATE holes SET %s = $1 WHERE match_id = $2 AND number = $3`, column)
	result, err := executor.ExecContext(ctx, query, strokes, matchID, number)
	if err != nil {
		return fmt.Errorf("failed to update hole %d score for match %d: %w", number, matchID, err)
	}
	return checkAffectedRows(result, ErrHoleNotFound)
}

func (r *postgresHoleRepository) ClearByMatch(ctx context.Context, exec SQLExecutor, matchID int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE holes SET team_a_score = NULL, team_b_score = NULL, team_c_score = NULL WHERE match_id = $1`
	_, err := executor.ExecContext(ctx, query, matchID)
	return err
}
