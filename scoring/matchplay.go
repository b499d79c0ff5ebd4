// Package scoring implements the match-result and standings computation
// engine. Every function here is pure: it takes an immutable snapshot of
// match and hole data and returns a derived result, with no I/O and no
// shared state. Callers are expected to recompute from the full current
// snapshot whenever the underlying data changes.
package scoring

import (
	"fmt"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
)

// Winner tags the outcome of one head-to-head pairing. The A/B labels are
// relative to the pairing, not to the match: in a three-way match the same
// team can be "A" of one pairing and "B" of another.
type Winner string

const (
	WinnerNone   Winner = ""
	WinnerTeamA  Winner = "team_a"
	WinnerTeamB  Winner = "team_b"
	WinnerHalved Winner = "halved"
)

// HoleScore is the per-hole input to the two-side resolver. A and B are
// nullable stroke counts; nil means the side has not recorded a score.
type HoleScore struct {
	Par int
	A   *int
	B   *int
}

// Result describes the state of one head-to-head pairing.
type Result struct {
	Completed   bool
	Winner      Winner // set only when Completed
	Score       string // formatted, e.g. "4/2", "2up", "AS"
	AHolesWon   int
	BHolesWon   int
	HolesHalved int
	HolesPlayed int
	TotalHoles  int
}

// Leader reports which side is currently ahead, regardless of whether the
// pairing is decided. WinnerNone means all square.
func (r Result) Leader() Winner {
	switch {
	case r.AHolesWon > r.BHolesWon:
		return WinnerTeamA
	case r.BHolesWon > r.AHolesWon:
		return WinnerTeamB
	}
	return WinnerNone
}

// Lead returns the absolute hole lead of the leading side.
func (r Result) Lead() int {
	if r.AHolesWon > r.BHolesWon {
		return r.AHolesWon - r.BHolesWon
	}
	return r.BHolesWon - r.AHolesWon
}

// Remaining returns the number of holes not yet counted as played.
func (r Result) Remaining() int {
	return r.TotalHoles - r.HolesPlayed
}

// holePlayed reports whether a hole counts toward play. Both sides must have
// a present, strictly positive stroke count. A hole where only one side has
// scored is not played, whatever the other side recorded; this is the
// expected steady state of live score entry, not an error.
func holePlayed(a, b *int) bool {
	return a != nil && *a > 0 && b != nil && *b > 0
}

// Resolve runs the match-play comparison over the given holes, in order,
// and decides whether the pairing is finished. A pairing is completed once
// every hole has been played or one side's lead exceeds the holes remaining
// (the trailing side can no longer catch up).
func Resolve(holes []HoleScore, totalHoles int) Result {
	res := Result{TotalHoles: totalHoles}

	for _, h := range holes {
		if !holePlayed(h.A, h.B) {
			continue
		}
		res.HolesPlayed++
		switch {
		case *h.A < *h.B:
			res.AHolesWon++
		case *h.B < *h.A:
			res.BHolesWon++
		default:
			res.HolesHalved++
		}
	}

	diff := res.Lead()
	remaining := totalHoles - res.HolesPlayed
	res.Completed = res.HolesPlayed == totalHoles || diff > remaining

	if res.Completed {
		switch {
		case diff == 0:
			res.Winner = WinnerHalved
			res.Score = "AS"
		case res.HolesPlayed == totalHoles:
			res.Winner = res.Leader()
			res.Score = fmt.Sprintf("%dup", diff)
		default:
			// Clinched before the last hole.
			res.Winner = res.Leader()
			res.Score = fmt.Sprintf("%d/%d", diff, remaining)
		}
		return res
	}

	if diff == 0 {
		res.Score = "AS"
	} else {
		res.Score = fmt.Sprintf("%dup", diff)
	}
	return res
}

// TotalHolesPerMatch is the round length for every match of the tournament.
const TotalHolesPerMatch = 18

// ResolveMatch resolves a two-way match from its hole records. The result's
// A side is the match's team A. Three-way matches must go through
// ResolveThreeWay instead.
func ResolveMatch(m *models.Match) Result {
	holes := make([]HoleScore, 0, len(m.Holes))
	for _, h := range m.Holes {
		holes = append(holes, HoleScore{Par: h.Par, A: h.TeamAScore, B: h.TeamBScore})
	}
	return Resolve(holes, TotalHolesPerMatch)
}
