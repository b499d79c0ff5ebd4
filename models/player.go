package models

import "time"

type Player struct {
	ID       int    `json:"id" db:"id"`
	TeamID   int    `json:"team_id" db:"team_id"`
	Name     string `json:"name" db:"name"`
	Handicap int    `json:"handicap" db:"handicap"` // used only by the Stableford engine

	// Display flags, never consulted by the scoring engine.
	IsPro       bool `json:"is_pro" db:"is_pro"`
	IsJunior    bool `json:"is_junior" db:"is_junior"`
	IsExOfficio bool `json:"is_ex_officio" db:"is_ex_officio"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
