package scoring

import (
	"testing"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeWayMatch builds an 18-hole three-way match where A beats B 2up,
// A beats C 2up, and B ties C.
func threeWayMatch() *models.Match {
	c := 3
	m := &models.Match{
		ID:      7,
		TeamAID: 1,
		TeamBID: 2,
		TeamCID: &c,
	}
	type row struct{ a, b, cc int }
	rows := []row{
		// A wins against both; B-C halved.
		{4, 5, 5}, {4, 5, 5}, {4, 5, 5}, {4, 5, 5},
		{4, 5, 5}, {4, 5, 5}, {4, 5, 5}, {4, 5, 5},
		// B wins against A and C.
		{5, 4, 5}, {5, 4, 5}, {5, 4, 5},
		// C wins against A and B.
		{5, 5, 4}, {5, 5, 4}, {5, 5, 4},
		// B and C both beat A; B-C halved.
		{5, 4, 4}, {5, 4, 4}, {5, 4, 4},
		// All level.
		{4, 4, 4},
	}
	for i, r := range rows {
		a, b, cc := r.a, r.b, r.cc
		m.Holes = append(m.Holes, models.Hole{
			Number:     i + 1,
			Par:        4,
			TeamAScore: &a,
			TeamBScore: &b,
			TeamCScore: &cc,
		})
	}
	return m
}

func TestResolveThreeWay(t *testing.T) {
	m := threeWayMatch()
	res := ResolveThreeWay(m)

	ab, ac, bc := res.Pairs[0], res.Pairs[1], res.Pairs[2]

	// A-B: A 8 wins (holes 1-8), B 6 wins (9-11, 15-17), 4 halved.
	require.True(t, ab.Result.Completed)
	assert.Equal(t, WinnerTeamA, ab.Result.Winner)
	assert.Equal(t, 1, ab.WinnerTeamID())
	assert.Equal(t, 8, ab.Result.AHolesWon)
	assert.Equal(t, 6, ab.Result.BHolesWon)
	assert.Equal(t, "2up", ab.Result.Score)

	// A-C: A 8 wins, C 6 wins (12-14, 15-17).
	require.True(t, ac.Result.Completed)
	assert.Equal(t, WinnerTeamA, ac.Result.Winner)
	assert.Equal(t, "2up", ac.Result.Score)

	// B-C: three wins each, level after 18.
	require.True(t, bc.Result.Completed)
	assert.Equal(t, WinnerHalved, bc.Result.Winner)
	assert.Equal(t, "AS", bc.Result.Score)

	assert.True(t, res.Completed)
}

func TestResolveThreeWayPairingsIndependent(t *testing.T) {
	// A hole can count for one pairing and not another: here only A and B
	// have scored hole 1, so A-C and B-C have no holes played.
	c := 3
	m := &models.Match{
		TeamAID: 1, TeamBID: 2, TeamCID: &c,
		Holes: []models.Hole{
			{Number: 1, Par: 4, TeamAScore: intp(4), TeamBScore: intp(5)},
		},
	}
	res := ResolveThreeWay(m)
	assert.Equal(t, 1, res.Pairs[0].Result.HolesPlayed)
	assert.Equal(t, 0, res.Pairs[1].Result.HolesPlayed)
	assert.Equal(t, 0, res.Pairs[2].Result.HolesPlayed)
	assert.False(t, res.Completed)
}

func TestResolveThreeWayIncompleteUntilAllPairsDecided(t *testing.T) {
	c := 3
	m := &models.Match{TeamAID: 1, TeamBID: 2, TeamCID: &c}
	// A thrashes B in 12 holes while C has nothing on the card yet.
	for i := 1; i <= 12; i++ {
		m.Holes = append(m.Holes, models.Hole{
			Number: i, Par: 4,
			TeamAScore: intp(4), TeamBScore: intp(6),
		})
	}
	res := ResolveThreeWay(m)
	assert.True(t, res.Pairs[0].Result.Completed)
	assert.False(t, res.Pairs[1].Result.Completed)
	assert.False(t, res.Pairs[2].Result.Completed)
	assert.False(t, res.Completed)
}

func TestThreeWaySummary(t *testing.T) {
	m := threeWayMatch()
	res := ResolveThreeWay(m)
	names := map[int]string{1: "Karen", 2: "Muthaiga", 3: "Vetlab"}
	got := res.Summary(func(id int) string { return names[id] })

	assert.Contains(t, got, "Karen beat Muthaiga")
	assert.Contains(t, got, "Karen beat Vetlab 2up")
	assert.Contains(t, got, "Muthaiga v Vetlab AS")
}

func TestStrokeTotals(t *testing.T) {
	c := 3
	m := &models.Match{
		TeamAID: 1, TeamBID: 2, TeamCID: &c,
		Holes: []models.Hole{
			{Number: 1, Par: 4, TeamAScore: intp(4), TeamBScore: intp(5), TeamCScore: intp(3)},
			{Number: 2, Par: 4, TeamAScore: intp(4), TeamBScore: nil, TeamCScore: intp(5)},
		},
	}
	totals := StrokeTotals(m)
	assert.Equal(t, 8, totals[1])
	assert.Equal(t, 5, totals[2])
	assert.Equal(t, 8, totals[3])
}
