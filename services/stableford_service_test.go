package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/S-Matheka/patrons-cup-live-sub000/realtime"
	"github.com/S-Matheka/patrons-cup-live-sub000/repositories"
)

type fakePlayerRepo struct {
	players map[int]*models.Player
}

func newFakePlayerRepo(players ...*models.Player) *fakePlayerRepo {
	r := &fakePlayerRepo{players: make(map[int]*models.Player)}
	for _, p := range players {
		r.players[p.ID] = p
	}
	return r
}

func (r *fakePlayerRepo) Create(_ context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	r.players[player.ID] = player
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return p, nil
}

func (r *fakePlayerRepo) ListByTeam(_ context.Context, teamID int) ([]*models.Player, error) {
	var out []*models.Player
	for _, p := range r.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) ListByDivision(_ context.Context, _ models.Division) ([]*models.Player, error) {
	var out []*models.Player
	for _, p := range r.players {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePlayerRepo) Update(_ context.Context, _ repositories.SQLExecutor, player *models.Player) error {
	r.players[player.ID] = player
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id int) error {
	delete(r.players, id)
	return nil
}

type cardKey struct{ playerID, round int }

type fakeStablefordRepo struct {
	cards  map[cardKey]*models.StablefordCard
	nextID int
}

func newFakeStablefordRepo() *fakeStablefordRepo {
	return &fakeStablefordRepo{cards: make(map[cardKey]*models.StablefordCard), nextID: 1}
}

func (r *fakeStablefordRepo) CreateCard(_ context.Context, _ repositories.SQLExecutor, card *models.StablefordCard) error {
	key := cardKey{card.PlayerID, card.Round}
	if _, ok := r.cards[key]; ok {
		return repositories.ErrStablefordCardConflict
	}
	card.ID = r.nextID
	r.nextID++
	stored := *card
	stored.Gross = make(map[int]*int)
	r.cards[key] = &stored
	return nil
}

func (r *fakeStablefordRepo) GetCard(_ context.Context, playerID, round int) (*models.StablefordCard, error) {
	c, ok := r.cards[cardKey{playerID, round}]
	if !ok {
		return nil, repositories.ErrStablefordCardNotFound
	}
	copied := *c
	copied.Gross = make(map[int]*int, len(c.Gross))
	for k, v := range c.Gross {
		copied.Gross[k] = v
	}
	return &copied, nil
}

func (r *fakeStablefordRepo) ListCardsByRound(_ context.Context, round int) ([]*models.StablefordCard, error) {
	var out []*models.StablefordCard
	for key, c := range r.cards {
		if key.round == round {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeStablefordRepo) ListCards(_ context.Context) ([]*models.StablefordCard, error) {
	var out []*models.StablefordCard
	for _, c := range r.cards {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeStablefordRepo) UpsertGross(_ context.Context, _ repositories.SQLExecutor, cardID, number int, gross *int) error {
	for _, c := range r.cards {
		if c.ID == cardID {
			c.Gross[number] = gross
			return nil
		}
	}
	return repositories.ErrStablefordCardNotFound
}

func newStablefordFixture(players ...*models.Player) StablefordService {
	return NewStablefordService(
		newFakeStablefordRepo(),
		newFakePlayerRepo(players...),
		newFakeTeamRepo(1, 2),
		fakeCourseRepo{},
		realtime.NewHub(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestOpenCardOncePerPlayerRound(t *testing.T) {
	svc := newStablefordFixture(&models.Player{ID: 1, Name: "J. Kibugu", Handicap: 8})
	ctx := context.Background()

	card, err := svc.OpenCard(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, card.Round)
	assert.Zero(t, card.Score.Points)

	_, err = svc.OpenCard(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrCardAlreadyOpen)

	_, err = svc.OpenCard(ctx, 1, 2)
	require.NoError(t, err)

	_, err = svc.OpenCard(ctx, 99, 1)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = svc.OpenCard(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidRound)
}

func TestEnterGrossScoresCard(t *testing.T) {
	// Handicap 9 on a course with stroke indexes 1..18: one stroke received
	// on holes indexed 1 through 9.
	svc := newStablefordFixture(&models.Player{ID: 1, Name: "A. Wanjiru", Handicap: 9})
	ctx := context.Background()

	_, err := svc.OpenCard(ctx, 1, 1)
	require.NoError(t, err)

	_, err = svc.EnterGross(ctx, 1, 1, GrossInput{Number: 0, Gross: intsp(4)})
	assert.ErrorIs(t, err, ErrInvalidHoleNumber)
	_, err = svc.EnterGross(ctx, 1, 1, GrossInput{Number: 1, Gross: intsp(-2)})
	assert.ErrorIs(t, err, ErrInvalidStrokeCount)
	_, err = svc.EnterGross(ctx, 2, 1, GrossInput{Number: 1, Gross: intsp(4)})
	assert.ErrorIs(t, err, ErrStablefordCardRequired)

	// Gross par on stroke index 1 nets a birdie: 3 points.
	card, err := svc.EnterGross(ctx, 1, 1, GrossInput{Number: 1, Gross: intsp(4)})
	require.NoError(t, err)
	assert.Equal(t, 3, card.Score.Points)
	assert.Equal(t, 1, card.Score.HolesPlayed)

	// Gross par on stroke index 18 stays a net par: 2 points.
	card, err = svc.EnterGross(ctx, 1, 1, GrossInput{Number: 18, Gross: intsp(4)})
	require.NoError(t, err)
	assert.Equal(t, 5, card.Score.Points)
	assert.Equal(t, 8, card.Score.GrossTotal)

	// Clearing the hole drops it from the totals again.
	card, err = svc.EnterGross(ctx, 1, 1, GrossInput{Number: 18, Gross: nil})
	require.NoError(t, err)
	assert.Equal(t, 3, card.Score.Points)
	assert.Equal(t, 1, card.Score.HolesPlayed)
}

func TestLeaderboardRanksByPoints(t *testing.T) {
	svc := newStablefordFixture(
		&models.Player{ID: 1, TeamID: 1, Name: "Low Gross", Handicap: 0},
		&models.Player{ID: 2, TeamID: 2, Name: "High Points", Handicap: 18},
	)
	ctx := context.Background()

	_, err := svc.OpenCard(ctx, 1, 1)
	require.NoError(t, err)
	_, err = svc.OpenCard(ctx, 2, 1)
	require.NoError(t, err)

	// Both shoot gross par on every hole; the 18 handicapper nets 18 birdies.
	for n := 1; n <= 18; n++ {
		_, err = svc.EnterGross(ctx, 1, 1, GrossInput{Number: n, Gross: intsp(4)})
		require.NoError(t, err)
		_, err = svc.EnterGross(ctx, 2, 1, GrossInput{Number: n, Gross: intsp(4)})
		require.NoError(t, err)
	}

	board, err := svc.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 2)

	assert.Equal(t, 2, board[0].Player.ID)
	assert.Equal(t, 54, board[0].Points)
	assert.Equal(t, 1, board[0].Position)

	assert.Equal(t, 1, board[1].Player.ID)
	assert.Equal(t, 36, board[1].Points)
	assert.Equal(t, 2, board[1].Position)

	roundBoard, err := svc.RoundLeaderboard(ctx, 1)
	require.NoError(t, err)
	require.Len(t, roundBoard, 2)
	assert.Equal(t, board[0].Points, roundBoard[0].Points)

	teamBoard, err := svc.TeamLeaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, teamBoard, 2)
	assert.Equal(t, 2, teamBoard[0].Team.ID)
	assert.Equal(t, 54, teamBoard[0].Points)
	assert.Equal(t, 1, teamBoard[0].Cards)
	assert.Equal(t, 1, teamBoard[0].Position)
}
