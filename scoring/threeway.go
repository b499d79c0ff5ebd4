package scoring

import (
	"fmt"
	"strings"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
)

// PairResult is one head-to-head leg of a three-way match. The embedded
// Result's A side is TeamXID and its B side is TeamYID.
type PairResult struct {
	TeamXID int
	TeamYID int
	Result  Result
}

// WinnerTeamID returns the ID of the pairing's winner, or 0 when the pairing
// is halved or undecided.
func (p PairResult) WinnerTeamID() int {
	switch p.Result.Winner {
	case WinnerTeamA:
		return p.TeamXID
	case WinnerTeamB:
		return p.TeamYID
	}
	return 0
}

// ThreeWayResult is the state of a three-way match: three independent
// head-to-head pairings (A-B, A-C, B-C) scored from the same hole records.
type ThreeWayResult struct {
	Completed bool
	Pairs     [3]PairResult
}

// ResolveThreeWay decomposes a three-way match into its three pairings and
// resolves each with the ordinary match-play rule. A hole counts for a
// pairing only when both of that pairing's sides have scored it, so the same
// hole can be played for one pairing and unplayed for another. The match as
// a whole is completed only once all three pairings are individually
// decided.
func ResolveThreeWay(m *models.Match) ThreeWayResult {
	if m.TeamCID == nil {
		// Not actually three-way; report the single pairing and two empty
		// legs so the caller does not have to special-case malformed input.
		res := ThreeWayResult{}
		res.Pairs[0] = PairResult{TeamXID: m.TeamAID, TeamYID: m.TeamBID, Result: ResolveMatch(m)}
		res.Completed = res.Pairs[0].Result.Completed
		return res
	}

	ab := make([]HoleScore, 0, len(m.Holes))
	ac := make([]HoleScore, 0, len(m.Holes))
	bc := make([]HoleScore, 0, len(m.Holes))
	for _, h := range m.Holes {
		ab = append(ab, HoleScore{Par: h.Par, A: h.TeamAScore, B: h.TeamBScore})
		ac = append(ac, HoleScore{Par: h.Par, A: h.TeamAScore, B: h.TeamCScore})
		bc = append(bc, HoleScore{Par: h.Par, A: h.TeamBScore, B: h.TeamCScore})
	}

	res := ThreeWayResult{
		Pairs: [3]PairResult{
			{TeamXID: m.TeamAID, TeamYID: m.TeamBID, Result: Resolve(ab, TotalHolesPerMatch)},
			{TeamXID: m.TeamAID, TeamYID: *m.TeamCID, Result: Resolve(ac, TotalHolesPerMatch)},
			{TeamXID: m.TeamBID, TeamYID: *m.TeamCID, Result: Resolve(bc, TotalHolesPerMatch)},
		},
	}
	res.Completed = res.Pairs[0].Result.Completed &&
		res.Pairs[1].Result.Completed &&
		res.Pairs[2].Result.Completed
	return res
}

// Summary renders the three pairings as a single human-readable line, using
// nameOf to map team IDs to display names.
func (t ThreeWayResult) Summary(nameOf func(int) string) string {
	parts := make([]string, 0, len(t.Pairs))
	for _, p := range t.Pairs {
		if p.TeamXID == 0 && p.TeamYID == 0 {
			continue
		}
		x, y := nameOf(p.TeamXID), nameOf(p.TeamYID)
		r := p.Result
		switch {
		case r.Completed && r.Winner == WinnerHalved:
			parts = append(parts, fmt.Sprintf("%s v %s AS", x, y))
		case r.Completed:
			winner, loser := x, y
			if r.Winner == WinnerTeamB {
				winner, loser = y, x
			}
			parts = append(parts, fmt.Sprintf("%s beat %s %s", winner, loser, r.Score))
		case r.Leader() == WinnerNone:
			parts = append(parts, fmt.Sprintf("%s v %s AS", x, y))
		default:
			leader, trailer := x, y
			if r.Leader() == WinnerTeamB {
				leader, trailer = y, x
			}
			parts = append(parts, fmt.Sprintf("%s leads %s %s", leader, trailer, r.Score))
		}
	}
	return strings.Join(parts, ", ")
}

// StrokeTotals sums each side's strokes over the holes that side has scored.
// This is the display-only stroke-play view of a three-way grouping (lowest
// cumulative total); it has no bearing on the match-play results above.
func StrokeTotals(m *models.Match) map[int]int {
	totals := map[int]int{m.TeamAID: 0, m.TeamBID: 0}
	if m.TeamCID != nil {
		totals[*m.TeamCID] = 0
	}
	for _, h := range m.Holes {
		if h.TeamAScore != nil && *h.TeamAScore > 0 {
			totals[m.TeamAID] += *h.TeamAScore
		}
		if h.TeamBScore != nil && *h.TeamBScore > 0 {
			totals[m.TeamBID] += *h.TeamBScore
		}
		if m.TeamCID != nil && h.TeamCScore != nil && *h.TeamCScore > 0 {
			totals[*m.TeamCID] += *h.TeamCScore
		}
	}
	return totals
}
