package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/lib/pq"
)

var (
	ErrStablefordCardNotFound = errors.New("stableford card not found")
	ErrStablefordCardConflict = errors.New("stableford card already exists for player and round")
)

type StablefordRepository interface {
	CreateCard(ctx context.Context, exec SQLExecutor, card *models.StablefordCard) error
	GetCard(ctx context.Context, playerID, round int) (*models.StablefordCard, error)
	ListCardsByRound(ctx context.Context, round int) ([]*models.StablefordCard, error)
	ListCards(ctx context.Context) ([]*models.StablefordCard, error)
	// UpsertGross writes one hole's gross score on a card, last write wins.
	UpsertGross(ctx context.Context, exec SQLExecutor, cardID, number int, gross *int) error
}

type postgresStablefordRepository struct {
	db *sql.DB
}

func NewPostgresStablefordRepository(db *sql.DB) StablefordRepository {
	return &postgresStablefordRepository{db: db}
}

func (r *postgresStablefordRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStablefordRepository) CreateCard(ctx context.Context, exec SQLExecutor, card *models.StablefordCard) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO stableford_cards (player_id, round, course_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := executor.QueryRowContext(ctx, query, card.PlayerID, card.Round, card.CourseID).
		Scan(&card.ID, &card.CreatedAt)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
		return ErrStablefordCardConflict
	}
	return err
}

func (r *postgresStablefordRepository) GetCard(ctx context.Context, playerID, round int) (*models.StablefordCard, error) {
	query := `SELECT id, player_id, round, course_id, created_at FROM stableford_cards WHERE player_id = $1 AND round = $2`
	var c models.StablefordCard
	err := r.db.QueryRowContext(ctx, query, playerID, round).
		Scan(&c.ID, &c.PlayerID, &c.Round, &c.CourseID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStablefordCardNotFound
		}
		return nil, fmt.Errorf("failed to scan stableford card: %w", err)
	}
	if c.Gross, err = r.loadGross(ctx, c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresStablefordRepository) ListCardsByRound(ctx context.Context, round int) ([]*models.StablefordCard, error) {
	query := `SELECT id, player_id, round, course_id, created_at FROM stableford_cards WHERE round = $1 ORDER BY player_id ASC`
	return r.listCards(ctx, query, round)
}

func (r *postgresStablefordRepository) ListCards(ctx context.Context) ([]*models.StablefordCard, error) {
	query := `SELECT id, player_id, round, course_id, created_at FROM stableford_cards ORDER BY round ASC, player_id ASC`
	return r.listCards(ctx, query)
}

func (r *postgresStablefordRepository) listCards(ctx context.Context, query string, args ...interface{}) ([]*models.StablefordCard, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stableford cards: %w", err)
	}
	defer rows.Close()

	cards := make([]*models.StablefordCard, 0)
	for rows.Next() {
		var c models.StablefordCard
		if scanErr := rows.Scan(&c.ID, &c.PlayerID, &c.Round, &c.CourseID, &c.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan stableford card row: %w", scanErr)
		}
		cards = append(cards, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during stableford card rows iteration: %w", err)
	}

	for _, c := range cards {
		if c.Gross, err = r.loadGross(ctx, c.ID); err != nil {
			return nil, err
		}
	}
	return cards, nil
}

func (r *postgresStablefordRepository) loadGross(ctx context.Context, cardID int) (map[int]*int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT number, gross FROM stableford_scores WHERE card_id = $1 ORDER BY number ASC`, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stableford scores for card %d: %w", cardID, err)
	}
	defer rows.Close()

	gross := make(map[int]*int, 18)
	for rows.Next() {
		var number int
		var strokes *int
		if scanErr := rows.Scan(&number, &strokes); scanErr != nil {
			return nil, fmt.Errorf("failed to scan stableford score row: %w", scanErr)
		}
		gross[number] = strokes
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during stableford score rows iteration: %w", err)
	}
	return gross, nil
}

func (r *postgresStablefordRepository) UpsertGross(ctx context.Context, exec SQLExecutor, cardID, number int, gross *int) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO stableford_scores (card_id, number, gross)
		VALUES ($1, $2, $3)
		ON CONFLICT (card_id, number) DO UPDATE SET gross = EXCLUDED.gross`
	_, err := executor.ExecContext(ctx, query, cardID, number, gross)
	if err != nil {
		return fmt.Errorf("failed to upsert stableford score card=%d hole=%d: %w", cardID, number, err)
	}
	return nil
}
