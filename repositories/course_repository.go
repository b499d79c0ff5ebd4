package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
)

var ErrCourseNotFound = errors.New("course not found")

type CourseRepository interface {
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// GetDefault returns the course the match-play and Stableford events are
	// played on. The course table is configuration data seeded by migration.
	GetDefault(ctx context.Context) (*models.Course, error)
}

type postgresCourseRepository struct {
	db *sql.DB
}

func NewPostgresCourseRepository(db *sql.DB) CourseRepository {
	return &postgresCourseRepository{db: db}
}

func (r *postgresCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	var c models.Course
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM courses WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to scan course %d: %w", id, err)
	}
	if c.Holes, err = r.listHoles(ctx, c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresCourseRepository) GetDefault(ctx context.Context) (*models.Course, error) {
	var c models.Course
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM courses ORDER BY id ASC LIMIT 1`).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to scan default course: %w", err)
	}
	if c.Holes, err = r.listHoles(ctx, c.ID); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresCourseRepository) listHoles(ctx context.Context, courseID int) ([]models.CourseHole, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT number, par, stroke_index
		FROM course_holes
		WHERE course_id = $1
		ORDER BY number ASC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query course holes: %w", err)
	}
	defer rows.Close()

	holes := make([]models.CourseHole, 0, 18)
	for rows.Next() {
		var h models.CourseHole
		if scanErr := rows.Scan(&h.Number, &h.Par, &h.StrokeIndex); scanErr != nil {
			return nil, fmt.Errorf("failed to scan course hole row: %w", scanErr)
		}
		holes = append(holes, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during course hole rows iteration: %w", err)
	}
	return holes, nil
}
