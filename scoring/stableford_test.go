package scoring

import (
	"testing"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStablefordPoints(t *testing.T) {
	tests := []struct {
		netToPar int
		want     int
	}{
		{-4, 5},
		{-3, 5},
		{-2, 4},
		{-1, 3},
		{0, 2},
		{1, 1},
		{2, 0},
		{5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StablefordPoints(tt.netToPar), "netToPar=%d", tt.netToPar)
	}
}

func TestStrokesReceived(t *testing.T) {
	assert.Equal(t, 1, StrokesReceived(10, 12))
	assert.Equal(t, 1, StrokesReceived(12, 12))
	assert.Equal(t, 0, StrokesReceived(13, 12))
	assert.Equal(t, 0, StrokesReceived(1, 0))
	// Handicaps above 18 never earn a second stroke.
	assert.Equal(t, 1, StrokesReceived(1, 24))
}

func testCourse() []models.CourseHole {
	holes := make([]models.CourseHole, 0, 18)
	for i := 1; i <= 18; i++ {
		par := 4
		switch i {
		case 3, 8, 12, 16:
			par = 3
		case 5, 10, 14, 18:
			par = 5
		}
		holes = append(holes, models.CourseHole{Number: i, Par: par, StrokeIndex: i})
	}
	return holes
}

func TestScoreRoundNetBirdie(t *testing.T) {
	// Gross 4 on a par-4 with stroke index 10, handicap 12: one stroke
	// received, net 3, a net birdie worth 3 points.
	course := []models.CourseHole{{Number: 1, Par: 4, StrokeIndex: 10}}
	round := ScoreRound(course, 12, map[int]*int{1: intp(4)})

	require.Len(t, round.Holes, 1)
	h := round.Holes[0]
	require.NotNil(t, h.Net)
	assert.Equal(t, 3, *h.Net)
	assert.Equal(t, 3, h.Points)
	assert.Equal(t, 3, round.Points)
}

func TestScoreRoundUnplayedHoles(t *testing.T) {
	course := testCourse()
	gross := map[int]*int{
		1: intp(5), // par 4, SI 1, handicap 6: net 4, 2 points
		2: intp(4), // par 4, SI 2: net 3, 3 points
		// everything else unscored
	}
	round := ScoreRound(course, 6, gross)

	assert.Equal(t, 2, round.HolesPlayed)
	assert.Equal(t, 9, round.GrossTotal)
	assert.Equal(t, 5, round.Points)
	for _, h := range round.Holes[2:] {
		assert.Nil(t, h.Net)
		assert.Zero(t, h.Points)
	}
}

func TestScoreRoundFullCard(t *testing.T) {
	course := testCourse()
	gross := map[int]*int{}
	for i := 1; i <= 18; i++ {
		g := course[i-1].Par // level par gross everywhere
		gross[i] = &g
	}
	// Handicap 9: one stroke on SI 1-9, so nine net birdies and nine net
	// pars: 9*3 + 9*2 points.
	round := ScoreRound(course, 9, gross)
	assert.Equal(t, 18, round.HolesPlayed)
	assert.Equal(t, 45, round.Points)
}

func TestSumRounds(t *testing.T) {
	rounds := []RoundScore{{Points: 31}, {Points: 28}, {Points: 40}}
	assert.Equal(t, 99, SumRounds(rounds))
}
