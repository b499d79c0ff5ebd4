package scoring

import "github.com/S-Matheka/patrons-cup-live-sub000/models"

// StablefordPoints converts a net-to-par result into Stableford points.
func StablefordPoints(netToPar int) int {
	switch {
	case netToPar <= -3:
		return 5
	case netToPar == -2:
		return 4
	case netToPar == -1:
		return 3
	case netToPar == 0:
		return 2
	case netToPar == 1:
		return 1
	}
	return 0
}

// StrokesReceived returns the handicap strokes a player gets on a hole: one
// stroke when the hole's stroke index is within the player's handicap.
// Handicaps above 18 do not earn a second stroke on the hardest holes; the
// event caps playing handicaps at 18.
func StrokesReceived(strokeIndex, handicap int) int {
	if strokeIndex <= handicap {
		return 1
	}
	return 0
}

// StablefordHole is the scored state of one hole on a card. Net is nil when
// the hole has no gross score; an unplayed hole earns zero points but is not
// otherwise penalised.
type StablefordHole struct {
	Number int  `json:"number"`
	Par    int  `json:"par"`
	Gross  *int `json:"gross"`
	Net    *int `json:"net"`
	Points int  `json:"points"`
}

// RoundScore aggregates one player's card over a round.
type RoundScore struct {
	Holes       []StablefordHole `json:"holes"`
	Points      int              `json:"points"`
	GrossTotal  int              `json:"gross_total"`
	HolesPlayed int              `json:"holes_played"`
}

// ScoreRound converts gross strokes into net Stableford points against the
// course's par and stroke-index table. gross is keyed by hole number.
func ScoreRound(course []models.CourseHole, handicap int, gross map[int]*int) RoundScore {
	round := RoundScore{Holes: make([]StablefordHole, 0, len(course))}
	for _, ch := range course {
		hole := StablefordHole{Number: ch.Number, Par: ch.Par, Gross: gross[ch.Number]}
		if hole.Gross != nil && *hole.Gross > 0 {
			net := *hole.Gross - StrokesReceived(ch.StrokeIndex, handicap)
			hole.Net = &net
			hole.Points = StablefordPoints(net - ch.Par)
			round.GrossTotal += *hole.Gross
			round.HolesPlayed++
		}
		round.Points += hole.Points
		round.Holes = append(round.Holes, hole)
	}
	return round
}

// SumRounds totals a player's points across rounds.
func SumRounds(rounds []RoundScore) int {
	total := 0
	for _, r := range rounds {
		total += r.Points
	}
	return total
}
