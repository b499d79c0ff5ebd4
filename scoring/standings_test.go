package scoring

import (
	"testing"
	"time"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trophyTeams(ids ...int) []models.Team {
	teams := make([]models.Team, 0, len(ids))
	for i, id := range ids {
		teams = append(teams, models.Team{ID: id, Division: models.DivisionTrophy, Seed: i + 1})
	}
	return teams
}

// twoWayMatch builds an 18-hole two-way match with the given win pattern.
// Unfilled holes stay unscored.
func twoWayMatch(id, aID, bID, aWins, bWins, halved int, date time.Time, session models.Session, matchType models.MatchType) *models.Match {
	m := &models.Match{
		ID:       id,
		Division: models.DivisionTrophy,
		Type:     matchType,
		Session:  session,
		Date:     date,
		TeamAID:  aID,
		TeamBID:  bID,
		Status:   models.MatchStatusInProgress,
	}
	num := 0
	add := func(a, b int) {
		num++
		av, bv := a, b
		m.Holes = append(m.Holes, models.Hole{Number: num, Par: 4, TeamAScore: &av, TeamBScore: &bv})
	}
	for i := 0; i < aWins; i++ {
		add(4, 5)
	}
	for i := 0; i < bWins; i++ {
		add(5, 4)
	}
	for i := 0; i < halved; i++ {
		add(4, 4)
	}
	for num < 18 {
		num++
		m.Holes = append(m.Holes, models.Hole{Number: num, Par: 4})
	}
	return m
}

func TestComputeStandingsThreeWayCredits(t *testing.T) {
	// A beats both B and C, B and C halve: A takes two wins, B and C one
	// loss and one halve each, and everyone's played count moves by two.
	m := threeWayMatch()
	m.Division = models.DivisionTrophy
	m.Type = models.MatchTypeFourBall
	m.Session = models.SessionAM
	m.Date = friday

	table := ComputeStandings(nil, StandingsInput{
		Teams:   trophyTeams(1, 2, 3),
		Matches: []*models.Match{m},
		Policy:  IncludeNone,
	})
	require.Len(t, table, 3)

	byID := map[int]TeamStanding{}
	for _, s := range table {
		byID[s.TeamID] = s
	}

	a, b, c := byID[1], byID[2], byID[3]

	assert.Equal(t, 2, a.MatchesPlayed)
	assert.Equal(t, 2, a.MatchesWon)
	assert.Equal(t, 10.0, a.Points) // two wins at 5

	assert.Equal(t, 2, b.MatchesPlayed)
	assert.Equal(t, 1, b.MatchesLost)
	assert.Equal(t, 1, b.MatchesHalved)
	assert.Equal(t, 2.5, b.Points)

	assert.Equal(t, 2, c.MatchesPlayed)
	assert.Equal(t, 1, c.MatchesLost)
	assert.Equal(t, 1, c.MatchesHalved)
	assert.Equal(t, 2.5, c.Points)

	// Points conservation: three decided pairings at 5 points each.
	total := a.Points + b.Points + c.Points
	assert.Equal(t, 15.0, total)

	for _, s := range table {
		assert.Equal(t, s.MatchesPlayed, s.MatchesWon+s.MatchesLost+s.MatchesHalved)
	}

	assert.Equal(t, 1, a.Position)
}

func TestComputeStandingsRanking(t *testing.T) {
	// Teams 1 and 2 finish on equal points and wins; team 1 has the better
	// hole differential and must rank first.
	m1 := twoWayMatch(1, 1, 3, 10, 2, 6, friday, models.SessionAM, models.MatchTypeFourBall)
	m2 := twoWayMatch(2, 2, 4, 7, 5, 6, friday, models.SessionAM, models.MatchTypeFourBall)

	table := ComputeStandings(nil, StandingsInput{
		Teams:   trophyTeams(1, 2, 3, 4),
		Matches: []*models.Match{m1, m2},
		Policy:  IncludeNone,
	})
	require.Len(t, table, 4)

	assert.Equal(t, 1, table[0].TeamID)
	assert.Equal(t, 1, table[0].Position)
	assert.Equal(t, 2, table[1].TeamID)
	assert.Equal(t, 2, table[1].Position)
	assert.Equal(t, table[0].Points, table[1].Points)
	assert.Equal(t, table[0].MatchesWon, table[1].MatchesWon)
	assert.Greater(t, table[0].HoleDiff(), table[1].HoleDiff())
}

func TestComputeStandingsStableOnFullTie(t *testing.T) {
	// No matches at all: every key ties, so roster order must be preserved.
	table := ComputeStandings(nil, StandingsInput{
		Teams:  trophyTeams(5, 2, 9),
		Policy: IncludeNone,
	})
	require.Len(t, table, 3)
	assert.Equal(t, []int{5, 2, 9}, []int{table[0].TeamID, table[1].TeamID, table[2].TeamID})
}

func TestComputeStandingsPositionChange(t *testing.T) {
	m := twoWayMatch(1, 2, 1, 12, 2, 4, friday, models.SessionAM, models.MatchTypeFourBall)

	table := ComputeStandings(nil, StandingsInput{
		Teams:             trophyTeams(1, 2),
		Matches:           []*models.Match{m},
		Policy:            IncludeNone,
		PreviousPositions: map[int]int{1: 1, 2: 2},
	})
	require.Len(t, table, 2)

	assert.Equal(t, 2, table[0].TeamID)
	assert.Equal(t, "up", table[0].PositionChange)
	assert.Equal(t, "down", table[1].PositionChange)
}

func TestComputeStandingsNoPriorSnapshot(t *testing.T) {
	table := ComputeStandings(nil, StandingsInput{
		Teams:  trophyTeams(1, 2),
		Policy: IncludeNone,
	})
	for _, s := range table {
		assert.Equal(t, "same", s.PositionChange)
	}
}

func TestComputeStandingsTrend(t *testing.T) {
	// Six decided matches for team 1: W W W L H W in playing order.
	// The trend keeps the last five, most recent first: W H L W W.
	matches := []*models.Match{
		twoWayMatch(1, 1, 2, 12, 2, 4, friday, models.SessionAM, models.MatchTypeFourBall),
		twoWayMatch(2, 1, 2, 12, 2, 4, friday, models.SessionPM, models.MatchTypeFoursomes),
		twoWayMatch(3, 1, 2, 12, 2, 4, saturday, models.SessionAM, models.MatchTypeFourBall),
		twoWayMatch(4, 2, 1, 12, 2, 4, saturday, models.SessionPM, models.MatchTypeFoursomes),
		twoWayMatch(5, 1, 2, 7, 7, 4, sunday, models.SessionAM, models.MatchTypeSingles),
		twoWayMatch(6, 1, 2, 12, 2, 4, sunday, models.SessionPM, models.MatchTypeSingles),
	}
	// Shuffle the input; the aggregator must order by date/session itself.
	shuffled := []*models.Match{matches[3], matches[5], matches[0], matches[4], matches[2], matches[1]}

	table := ComputeStandings(nil, StandingsInput{
		Teams:   trophyTeams(1, 2),
		Matches: shuffled,
		Policy:  IncludeNone,
	})
	require.Len(t, table, 2)
	byID := map[int]TeamStanding{}
	for _, s := range table {
		byID[s.TeamID] = s
	}
	assert.Equal(t, "WHLWW", byID[1].Trend)
	assert.Equal(t, "LHWLL", byID[2].Trend)
}

func TestComputeStandingsSkipsUnknownTeams(t *testing.T) {
	known := twoWayMatch(1, 1, 2, 12, 2, 4, friday, models.SessionAM, models.MatchTypeFourBall)
	stray := twoWayMatch(2, 1, 99, 12, 2, 4, friday, models.SessionAM, models.MatchTypeFourBall)

	table := ComputeStandings(nil, StandingsInput{
		Teams:   trophyTeams(1, 2),
		Matches: []*models.Match{known, stray},
		Policy:  IncludeNone,
	})
	require.Len(t, table, 2)
	byID := map[int]TeamStanding{}
	for _, s := range table {
		byID[s.TeamID] = s
	}
	// Only the clean match counts; the stray pairing is dropped whole.
	assert.Equal(t, 1, byID[1].MatchesPlayed)
	assert.Equal(t, 5.0, byID[1].Points)
}

func TestComputeStandingsEmptyDivision(t *testing.T) {
	table := ComputeStandings(nil, StandingsInput{Policy: IncludeNone})
	assert.Empty(t, table)
}

func TestComputeStandingsInProgressPolicies(t *testing.T) {
	// Live match: team 1 leads 3up with eight holes played.
	live := twoWayMatch(1, 1, 2, 5, 2, 1, friday, models.SessionAM, models.MatchTypeFourBall)

	t.Run("none excludes it", func(t *testing.T) {
		table := ComputeStandings(nil, StandingsInput{
			Teams:   trophyTeams(1, 2),
			Matches: []*models.Match{live},
			Policy:  IncludeNone,
		})
		for _, s := range table {
			assert.Zero(t, s.Points)
			assert.Zero(t, s.MatchesPlayed)
		}
	})

	t.Run("leader takes all", func(t *testing.T) {
		table := ComputeStandings(nil, StandingsInput{
			Teams:   trophyTeams(1, 2),
			Matches: []*models.Match{live},
			Policy:  IncludeLeaderTakesAll,
		})
		byID := map[int]TeamStanding{}
		for _, s := range table {
			byID[s.TeamID] = s
		}
		assert.Equal(t, 5.0, byID[1].Points)
		assert.Equal(t, 0.0, byID[2].Points)
		assert.Equal(t, 1, byID[1].MatchesWon)
		assert.Equal(t, 1, byID[2].MatchesLost)
	})

	t.Run("fractional by hole lead", func(t *testing.T) {
		table := ComputeStandings(nil, StandingsInput{
			Teams:   trophyTeams(1, 2),
			Matches: []*models.Match{live},
			Policy:  IncludeFractionalByHoleLead,
		})
		byID := map[int]TeamStanding{}
		for _, s := range table {
			byID[s.TeamID] = s
		}
		// Lead of 3: leader at tie + (win-tie)*3/9, trailer at tie*(1-3/9).
		assert.InDelta(t, 2.5+(5-2.5)/3.0, byID[1].Points, 1e-9)
		assert.InDelta(t, 2.5*2.0/3.0, byID[2].Points, 1e-9)
		// Provisional points never move the counters.
		assert.Zero(t, byID[1].MatchesPlayed)
		assert.Zero(t, byID[2].MatchesPlayed)
	})
}

func TestComputeStandingsForcedCompletion(t *testing.T) {
	// Admin marked the match completed while team 1 led 1up: the pairing
	// stands as it lies and team 1 takes the win.
	m := twoWayMatch(1, 1, 2, 5, 4, 2, friday, models.SessionAM, models.MatchTypeFourBall)
	m.Status = models.MatchStatusCompleted

	table := ComputeStandings(nil, StandingsInput{
		Teams:   trophyTeams(1, 2),
		Matches: []*models.Match{m},
		Policy:  IncludeNone,
	})
	byID := map[int]TeamStanding{}
	for _, s := range table {
		byID[s.TeamID] = s
	}
	assert.Equal(t, 5.0, byID[1].Points)
	assert.Equal(t, 1, byID[1].MatchesWon)
	assert.Equal(t, 1, byID[2].MatchesLost)
}
