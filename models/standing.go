package models

import "time"

// Standing is the cached result of a standings recomputation for one team in
// one division. It is derived data: every refresh overwrites the division's
// rows wholesale, it is never patched incrementally.
type Standing struct {
	ID            int      `json:"id" db:"id"`
	TeamID        int      `json:"team_id" db:"team_id"`
	Division      Division `json:"division" db:"division"`
	Points        float64  `json:"points" db:"points"`
	MatchesPlayed int      `json:"matches_played" db:"matches_played"`
	MatchesWon    int      `json:"matches_won" db:"matches_won"`
	MatchesLost   int      `json:"matches_lost" db:"matches_lost"`
	MatchesHalved int      `json:"matches_halved" db:"matches_halved"`
	HolesWon      int      `json:"holes_won" db:"holes_won"`
	HolesLost     int      `json:"holes_lost" db:"holes_lost"`
	Position      int      `json:"position" db:"position"`
	// PositionChange is "up", "down" or "same" relative to the previous
	// recomputation, "same" when there is no prior snapshot.
	PositionChange string `json:"position_change" db:"position_change"`
	// Trend holds the last five head-to-head outcomes, most recent first,
	// as W/L/H characters, e.g. "WWLHW".
	Trend     string    `json:"trend" db:"trend"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
