package models

import "time"

// StablefordCard is one player's gross scores for one round of the individual
// stroke-play event. Gross scores are nullable: a hole not yet played simply
// contributes nothing.
type StablefordCard struct {
	ID        int       `json:"id" db:"id"`
	PlayerID  int       `json:"player_id" db:"player_id"`
	Round     int       `json:"round" db:"round"`
	CourseID  int       `json:"course_id" db:"course_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Gross is indexed by hole number 1..18 when loaded.
	Gross map[int]*int `json:"gross" db:"-"`

	Player *Player `json:"player,omitempty" db:"-"`
}
