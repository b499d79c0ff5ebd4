package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

type MatchType string

const (
	MatchTypeFourBall  MatchType = "four_ball_better_ball"
	MatchTypeFoursomes MatchType = "foursomes"
	MatchTypeSingles   MatchType = "singles"
)

type Session string

const (
	SessionAM Session = "AM"
	SessionPM Session = "PM"
)

// Match is one scheduled game between two teams, or three teams scored as
// three independent head-to-head pairings. TeamCID nil means two-way.
type Match struct {
	ID       int         `json:"id" db:"id"`
	Division Division    `json:"division" db:"division"`
	Type     MatchType   `json:"type" db:"type"`
	Session  Session     `json:"session" db:"session"`
	Date     time.Time   `json:"date" db:"date"`
	TeeTime  *time.Time  `json:"tee_time,omitempty" db:"tee_time"`
	TeamAID  int         `json:"team_a_id" db:"team_a_id"`
	TeamBID  int         `json:"team_b_id" db:"team_b_id"`
	TeamCID  *int        `json:"team_c_id,omitempty" db:"team_c_id"`
	Status   MatchStatus `json:"status" db:"status"`

	// Holes is loaded ordered by hole number, 1..18.
	Holes []Hole `json:"holes,omitempty" db:"-"`

	TeamA *Team `json:"team_a,omitempty" db:"-"`
	TeamB *Team `json:"team_b,omitempty" db:"-"`
	TeamC *Team `json:"team_c,omitempty" db:"-"`
}

func (m *Match) IsThreeWay() bool {
	return m.TeamCID != nil
}

// Hole holds the per-side stroke counts for one hole of a match. A nil score
// means "not yet entered", which is distinct from zero.
type Hole struct {
	ID         int  `json:"id" db:"id"`
	MatchID    int  `json:"match_id" db:"match_id"`
	Number     int  `json:"number" db:"number"` // 1..18, unique within match
	Par        int  `json:"par" db:"par"`
	TeamAScore *int `json:"team_a_score" db:"team_a_score"`
	TeamBScore *int `json:"team_b_score" db:"team_b_score"`
	TeamCScore *int `json:"team_c_score" db:"team_c_score"`
}
