package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/S-Matheka/patrons-cup-live-sub000/realtime"
	"github.com/S-Matheka/patrons-cup-live-sub000/repositories"
	"github.com/S-Matheka/patrons-cup-live-sub000/scoring"
)

// stablefordRoom is the single broadcast room for the individual event; it
// is not split by division because the leaderboard mixes all players.
const stablefordRoom = "stableford"

type StablefordService interface {
	OpenCard(ctx context.Context, playerID, round int) (*CardDetail, error)
	GetCard(ctx context.Context, playerID, round int) (*CardDetail, error)
	EnterGross(ctx context.Context, playerID, round int, input GrossInput) (*CardDetail, error)
	Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
	RoundLeaderboard(ctx context.Context, round int) ([]LeaderboardEntry, error)
	TeamLeaderboard(ctx context.Context) ([]TeamLeaderboardEntry, error)
}

// GrossInput writes one hole's gross strokes on a card. A nil Gross clears
// the hole again.
type GrossInput struct {
	Number int  `json:"number"`
	Gross  *int `json:"gross"`
}

// CardDetail is a card with its round scored against the course.
type CardDetail struct {
	*models.StablefordCard
	Score scoring.RoundScore `json:"score"`
}

// LeaderboardEntry is one player's line on the Stableford table.
type LeaderboardEntry struct {
	Player      *models.Player `json:"player"`
	Rounds      []RoundLine    `json:"rounds"`
	Points      int            `json:"points"`
	GrossTotal  int            `json:"gross_total"`
	HolesPlayed int            `json:"holes_played"`
	Position    int            `json:"position"`
}

type RoundLine struct {
	Round int                `json:"round"`
	Score scoring.RoundScore `json:"score"`
}

// TeamLeaderboardEntry sums a team's player points across every card.
type TeamLeaderboardEntry struct {
	Team     *models.Team `json:"team"`
	Points   int          `json:"points"`
	Cards    int          `json:"cards"`
	Position int          `json:"position"`
}

type stablefordService struct {
	stablefordRepo repositories.StablefordRepository
	playerRepo     repositories.PlayerRepository
	teamRepo       repositories.TeamRepository
	courseRepo     repositories.CourseRepository
	hub            *realtime.Hub
	logger         *slog.Logger
}

func NewStablefordService(
	stablefordRepo repositories.StablefordRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	courseRepo repositories.CourseRepository,
	hub *realtime.Hub,
	logger *slog.Logger,
) StablefordService {
	return &stablefordService{
		stablefordRepo: stablefordRepo,
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		courseRepo:     courseRepo,
		hub:            hub,
		logger:         logger,
	}
}

func (s *stablefordService) OpenCard(ctx context.Context, playerID, round int) (*CardDetail, error) {
	if round < 1 {
		return nil, ErrInvalidRound
	}
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}
	course, err := s.courseRepo.GetDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load course for new card: %w", err)
	}

	card := &models.StablefordCard{
		PlayerID: playerID,
		Round:    round,
		CourseID: course.ID,
	}
	if err := s.stablefordRepo.CreateCard(ctx, nil, card); err != nil {
		if errors.Is(err, repositories.ErrStablefordCardConflict) {
			return nil, ErrCardAlreadyOpen
		}
		return nil, err
	}
	card.Gross = make(map[int]*int)
	card.Player = player
	return s.score(card, player, course), nil
}

func (s *stablefordService) GetCard(ctx context.Context, playerID, round int) (*CardDetail, error) {
	card, err := s.stablefordRepo.GetCard(ctx, playerID, round)
	if err != nil {
		if errors.Is(err, repositories.ErrStablefordCardNotFound) {
			return nil, ErrStablefordCardRequired
		}
		return nil, err
	}
	player, err := s.playerRepo.GetByID(ctx, card.PlayerID)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}
	course, err := s.courseRepo.GetByID(ctx, card.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course %d: %w", card.CourseID, err)
	}
	card.Player = player
	return s.score(card, player, course), nil
}

func (s *stablefordService) EnterGross(ctx context.Context, playerID, round int, input GrossInput) (*CardDetail, error) {
	if input.Number < 1 || input.Number > scoring.TotalHolesPerMatch {
		return nil, ErrInvalidHoleNumber
	}
	if input.Gross != nil && *input.Gross <= 0 {
		return nil, ErrInvalidStrokeCount
	}

	card, err := s.stablefordRepo.GetCard(ctx, playerID, round)
	if err != nil {
		if errors.Is(err, repositories.ErrStablefordCardNotFound) {
			return nil, ErrStablefordCardRequired
		}
		return nil, err
	}
	if err := s.stablefordRepo.UpsertGross(ctx, nil, card.ID, input.Number, input.Gross); err != nil {
		return nil, err
	}
	card.Gross[input.Number] = input.Gross

	player, err := s.playerRepo.GetByID(ctx, card.PlayerID)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}
	course, err := s.courseRepo.GetByID(ctx, card.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load course %d: %w", card.CourseID, err)
	}
	card.Player = player
	detail := s.score(card, player, course)

	s.hub.BroadcastToRoom(stablefordRoom, realtime.Message{
		Type:    realtime.MessageStablefordUpdated,
		Payload: detail,
	})
	return detail, nil
}

func (s *stablefordService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	cards, err := s.stablefordRepo.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildLeaderboard(ctx, cards)
}

func (s *stablefordService) RoundLeaderboard(ctx context.Context, round int) ([]LeaderboardEntry, error) {
	if round < 1 {
		return nil, ErrInvalidRound
	}
	cards, err := s.stablefordRepo.ListCardsByRound(ctx, round)
	if err != nil {
		return nil, err
	}
	return s.buildLeaderboard(ctx, cards)
}

// TeamLeaderboard folds the individual leaderboard into per-team totals.
func (s *stablefordService) TeamLeaderboard(ctx context.Context) ([]TeamLeaderboardEntry, error) {
	players, err := s.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	byTeam := make(map[int]*TeamLeaderboardEntry)
	order := make([]int, 0)
	for _, entry := range players {
		teamID := entry.Player.TeamID
		line, ok := byTeam[teamID]
		if !ok {
			team, err := s.teamRepo.GetByID(ctx, teamID)
			if err != nil {
				s.logger.Warn("skipping cards for unknown team", "team_id", teamID, "player_id", entry.Player.ID)
				continue
			}
			line = &TeamLeaderboardEntry{Team: team}
			byTeam[teamID] = line
			order = append(order, teamID)
		}
		line.Points += entry.Points
		line.Cards += len(entry.Rounds)
	}

	entries := make([]TeamLeaderboardEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, *byTeam[id])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries, nil
}

// buildLeaderboard folds cards into per-player lines, ranked by points with
// total gross as the tie-break (fewer strokes ranks higher).
func (s *stablefordService) buildLeaderboard(ctx context.Context, cards []*models.StablefordCard) ([]LeaderboardEntry, error) {
	courses := make(map[int]*models.Course)
	byPlayer := make(map[int]*LeaderboardEntry)
	order := make([]int, 0, len(cards))

	for _, card := range cards {
		course, ok := courses[card.CourseID]
		if !ok {
			var err error
			course, err = s.courseRepo.GetByID(ctx, card.CourseID)
			if err != nil {
				return nil, fmt.Errorf("failed to load course %d: %w", card.CourseID, err)
			}
			courses[card.CourseID] = course
		}

		entry, ok := byPlayer[card.PlayerID]
		if !ok {
			player, err := s.playerRepo.GetByID(ctx, card.PlayerID)
			if err != nil {
				s.logger.Warn("skipping card for unknown player", "player_id", card.PlayerID, "card_id", card.ID)
				continue
			}
			entry = &LeaderboardEntry{Player: player}
			byPlayer[card.PlayerID] = entry
			order = append(order, card.PlayerID)
		}

		score := scoring.ScoreRound(course.Holes, entry.Player.Handicap, card.Gross)
		entry.Rounds = append(entry.Rounds, RoundLine{Round: card.Round, Score: score})
		entry.Points += score.Points
		entry.GrossTotal += score.GrossTotal
		entry.HolesPlayed += score.HolesPlayed
	}

	entries := make([]LeaderboardEntry, 0, len(order))
	for _, id := range order {
		e := byPlayer[id]
		sort.Slice(e.Rounds, func(i, j int) bool { return e.Rounds[i].Round < e.Rounds[j].Round })
		entries = append(entries, *e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].GrossTotal < entries[j].GrossTotal
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries, nil
}

func (s *stablefordService) score(card *models.StablefordCard, player *models.Player, course *models.Course) *CardDetail {
	return &CardDetail{
		StablefordCard: card,
		Score:          scoring.ScoreRound(course.Holes, player.Handicap, card.Gross),
	}
}
