package scoring

import (
	"log/slog"
	"sort"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
)

// InProgressPolicy selects how a standings view treats matches that are
// still out on the course. Exactly one policy applies per computation;
// callers must not mix views.
type InProgressPolicy string

const (
	// IncludeNone is the official view: only decided pairings score.
	IncludeNone InProgressPolicy = "none"
	// IncludeLeaderTakesAll credits a live pairing as if it ended now:
	// the current leader takes the full win award.
	IncludeLeaderTakesAll InProgressPolicy = "leader_takes_all"
	// IncludeFractionalByHoleLead awards provisional points scaled by the
	// current hole lead. Points only; the W/L/H counters stay official.
	IncludeFractionalByHoleLead InProgressPolicy = "fractional_by_hole_lead"
)

// TeamStanding is one team's line in a division table.
type TeamStanding struct {
	TeamID         int     `json:"team_id"`
	Points         float64 `json:"points"`
	MatchesPlayed  int     `json:"matches_played"`
	MatchesWon     int     `json:"matches_won"`
	MatchesLost    int     `json:"matches_lost"`
	MatchesHalved  int     `json:"matches_halved"`
	HolesWon       int     `json:"holes_won"`
	HolesLost      int     `json:"holes_lost"`
	Position       int     `json:"position"`
	PositionChange string  `json:"position_change"`
	Trend          string  `json:"trend"`

	outcomes []byte // chronological W/L/H, trimmed to Trend at the end
}

// HoleDiff is the ranking tie-break differential.
func (s TeamStanding) HoleDiff() int {
	return s.HolesWon - s.HolesLost
}

// StandingsInput is the full snapshot a standings computation works from.
type StandingsInput struct {
	Teams   []models.Team
	Matches []*models.Match
	Policy  InProgressPolicy
	// PreviousPositions maps team ID to the position recorded by the prior
	// computation; teams absent from the map report no movement.
	PreviousPositions map[int]int
}

// trendLength is how many recent outcomes the form display shows.
const trendLength = 5

// ComputeStandings folds every match of a division into ranked per-team
// totals. Three-way matches credit each of their three pairings
// independently, so one three-way match moves a team's matches-played
// counter by two. Matches referencing teams outside the roster, and matches
// without hole data, are skipped rather than failing the table. logger may
// be nil.
func ComputeStandings(logger *slog.Logger, in StandingsInput) []TeamStanding {
	acc := make(map[int]*TeamStanding, len(in.Teams))
	order := make([]int, 0, len(in.Teams))
	for _, t := range in.Teams {
		acc[t.ID] = &TeamStanding{TeamID: t.ID, PositionChange: "same"}
		order = append(order, t.ID)
	}

	// Trend needs the matches in playing order.
	matches := make([]*models.Match, len(in.Matches))
	copy(matches, in.Matches)
	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.Before(matches[j].Date)
		}
		if matches[i].Session != matches[j].Session {
			return matches[i].Session == models.SessionAM
		}
		return matches[i].ID < matches[j].ID
	})

	for _, m := range matches {
		pts := PointsFor(logger, m.Date, m.Session, m.Type, m.Division)
		for _, pair := range matchPairings(m) {
			creditPairing(acc, m, pair, pts, in.Policy, logger)
		}
	}

	table := make([]TeamStanding, 0, len(order))
	for _, id := range order {
		s := *acc[id]
		s.Trend = formatTrend(s.outcomes)
		s.outcomes = nil
		table = append(table, s)
	}

	// Points, then wins, then hole differential; stable so fully tied teams
	// keep roster order.
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].MatchesWon != table[j].MatchesWon {
			return table[i].MatchesWon > table[j].MatchesWon
		}
		return table[i].HoleDiff() > table[j].HoleDiff()
	})

	for i := range table {
		table[i].Position = i + 1
		prev, ok := in.PreviousPositions[table[i].TeamID]
		switch {
		case !ok || prev == table[i].Position:
			table[i].PositionChange = "same"
		case table[i].Position < prev:
			table[i].PositionChange = "up"
		default:
			table[i].PositionChange = "down"
		}
	}
	return table
}

// matchPairings expands a match into its head-to-head pairings: one for a
// two-way match, three for a three-way match.
func matchPairings(m *models.Match) []PairResult {
	if m.IsThreeWay() {
		tw := ResolveThreeWay(m)
		return tw.Pairs[:]
	}
	return []PairResult{{TeamXID: m.TeamAID, TeamYID: m.TeamBID, Result: ResolveMatch(m)}}
}

func creditPairing(acc map[int]*TeamStanding, m *models.Match, pair PairResult, pts PointsValue, policy InProgressPolicy, logger *slog.Logger) {
	x, okX := acc[pair.TeamXID]
	y, okY := acc[pair.TeamYID]
	if !okX || !okY {
		// Match references a team outside the division roster; one bad
		// record must not blank the table.
		if logger != nil {
			logger.Warn("skipping pairing with team outside roster",
				slog.Int("match_id", m.ID),
				slog.Int("team_x", pair.TeamXID),
				slog.Int("team_y", pair.TeamYID),
			)
		}
		return
	}

	res := pair.Result

	// Nothing on the card yet: contributes nothing, whatever the status.
	if res.HolesPlayed == 0 {
		return
	}

	// An admin can force a match completed before the resolver decides it;
	// the pairing then stands as it lies.
	decided := res.Completed || m.Status == models.MatchStatusCompleted
	if !decided && policy == IncludeNone {
		return
	}

	x.HolesWon += res.AHolesWon
	x.HolesLost += res.BHolesWon
	y.HolesWon += res.BHolesWon
	y.HolesLost += res.AHolesWon

	if decided {
		winner := res.Winner
		if winner == WinnerNone {
			// Forced completion: the current leader wins, level is halved.
			winner = res.Leader()
			if winner == WinnerNone {
				winner = WinnerHalved
			}
		}
		creditDecided(x, y, winner, pts)
		return
	}

	switch policy {
	case IncludeLeaderTakesAll:
		winner := res.Leader()
		if winner == WinnerNone {
			winner = WinnerHalved
		}
		creditDecided(x, y, winner, pts)
	case IncludeFractionalByHoleLead:
		// Provisional points slide from a halve toward a full win as the
		// lead grows; counters stay untouched so the live table still
		// satisfies won+lost+halved == played.
		frac := float64(res.Lead()) / 9.0
		if frac > 1 {
			frac = 1
		}
		leaderPts := pts.Tie + (pts.Win-pts.Tie)*frac
		trailerPts := pts.Tie * (1 - frac)
		if res.Leader() == WinnerTeamB {
			x.Points += trailerPts
			y.Points += leaderPts
		} else {
			x.Points += leaderPts
			y.Points += trailerPts
		}
	}
}

// creditDecided applies points, W/L/H counters and the trend entry for one
// decided (or treated-as-decided) pairing.
func creditDecided(x, y *TeamStanding, winner Winner, pts PointsValue) {
	x.MatchesPlayed++
	y.MatchesPlayed++
	switch winner {
	case WinnerTeamA:
		x.Points += pts.Win
		x.MatchesWon++
		y.MatchesLost++
		x.outcomes = append(x.outcomes, 'W')
		y.outcomes = append(y.outcomes, 'L')
	case WinnerTeamB:
		y.Points += pts.Win
		y.MatchesWon++
		x.MatchesLost++
		y.outcomes = append(y.outcomes, 'W')
		x.outcomes = append(x.outcomes, 'L')
	case WinnerHalved:
		x.Points += pts.Tie
		y.Points += pts.Tie
		x.MatchesHalved++
		y.MatchesHalved++
		x.outcomes = append(x.outcomes, 'H')
		y.outcomes = append(y.outcomes, 'H')
	}
}

// formatTrend renders the last outcomes most recent first.
func formatTrend(outcomes []byte) string {
	n := len(outcomes)
	if n > trendLength {
		outcomes = outcomes[n-trendLength:]
		n = trendLength
	}
	rev := make([]byte, n)
	for i := 0; i < n; i++ {
		rev[i] = outcomes[n-1-i]
	}
	return string(rev)
}

// PreviousPositionsFrom builds the prior-position snapshot the ranking
// movement indicator needs from cached standings rows.
func PreviousPositionsFrom(standings []*models.Standing) map[int]int {
	prev := make(map[int]int, len(standings))
	for _, s := range standings {
		if s.Position > 0 {
			prev[s.TeamID] = s.Position
		}
	}
	return prev
}
