package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/S-Matheka/patrons-cup-live-sub000/realtime"
	"github.com/S-Matheka/patrons-cup-live-sub000/repositories"
	"github.com/S-Matheka/patrons-cup-live-sub000/scoring"
)

type StandingsService interface {
	// ListByDivision reads the cached table written by the last refresh.
	ListByDivision(ctx context.Context, division models.Division) ([]*models.Standing, error)
	// ComputeDivision builds a table from the current match snapshot without
	// touching the cache. Used for the live views with a chosen policy.
	ComputeDivision(ctx context.Context, division models.Division, policy scoring.InProgressPolicy) ([]scoring.TeamStanding, error)
	// RefreshDivision recomputes one division and overwrites its cache.
	RefreshDivision(ctx context.Context, division models.Division) error
	RefreshLiveDivision(ctx context.Context, division models.Division) error
	// RefreshAll recomputes every division, in parallel.
	RefreshAll(ctx context.Context) error
}

type standingsService struct {
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	holeRepo     repositories.HoleRepository
	standingRepo repositories.StandingRepository
	hub          *realtime.Hub
	logger       *slog.Logger
	// livePolicy controls how in-progress pairings score in the cached
	// table. The official policy is applied once all matches complete.
	livePolicy scoring.InProgressPolicy
}

func NewStandingsService(
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	holeRepo repositories.HoleRepository,
	standingRepo repositories.StandingRepository,
	hub *realtime.Hub,
	logger *slog.Logger,
	livePolicy scoring.InProgressPolicy,
) StandingsService {
	if livePolicy == "" {
		livePolicy = scoring.IncludeNone
	}
	return &standingsService{
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		holeRepo:     holeRepo,
		standingRepo: standingRepo,
		hub:          hub,
		logger:       logger,
		livePolicy:   livePolicy,
	}
}

func (s *standingsService) ListByDivision(ctx context.Context, division models.Division) ([]*models.Standing, error) {
	if !division.Valid() {
		return nil, ErrInvalidDivision
	}
	standings, err := s.standingRepo.ListByDivision(ctx, nil, division)
	if err != nil {
		return nil, fmt.Errorf("failed to read standings for division %s: %w", division, err)
	}
	return standings, nil
}

func (s *standingsService) ComputeDivision(ctx context.Context, division models.Division, policy scoring.InProgressPolicy) ([]scoring.TeamStanding, error) {
	if !division.Valid() {
		return nil, ErrInvalidDivision
	}
	in, err := s.snapshot(ctx, division)
	if err != nil {
		return nil, err
	}
	in.Policy = policy
	return scoring.ComputeStandings(s.logger, in), nil
}

func (s *standingsService) RefreshDivision(ctx context.Context, division models.Division) error {
	if !division.Valid() {
		return ErrInvalidDivision
	}
	in, err := s.snapshot(ctx, division)
	if err != nil {
		return err
	}
	in.Policy = s.livePolicy

	previous, err := s.standingRepo.ListByDivision(ctx, nil, division)
	if err != nil {
		return fmt.Errorf("failed to read prior standings for division %s: %w", division, err)
	}
	in.PreviousPositions = scoring.PreviousPositionsFrom(previous)

	table := scoring.ComputeStandings(s.logger, in)
	rows := make([]*models.Standing, 0, len(table))
	for _, t := range table {
		rows = append(rows, &models.Standing{
			TeamID:         t.TeamID,
			Division:       division,
			Points:         t.Points,
			MatchesPlayed:  t.MatchesPlayed,
			MatchesWon:     t.MatchesWon,
			MatchesLost:    t.MatchesLost,
			MatchesHalved:  t.MatchesHalved,
			HolesWon:       t.HolesWon,
			HolesLost:      t.HolesLost,
			Position:       t.Position,
			PositionChange: t.PositionChange,
			Trend:          t.Trend,
		})
	}
	if err := s.standingRepo.ReplaceDivision(ctx, division, rows); err != nil {
		return fmt.Errorf("failed to replace standings for division %s: %w", division, err)
	}

	s.hub.BroadcastToRoom(fmt.Sprintf("division_%s", division), realtime.Message{
		Type:    realtime.MessageStandingsUpdated,
		Payload: rows,
	})
	return nil
}

func (s *standingsService) RefreshLiveDivision(ctx context.Context, division models.Division) error {
	return s.RefreshDivision(ctx, division)
}

func (s *standingsService) RefreshAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, division := range models.AllDivisions {
		division := division
		g.Go(func() error {
			if err := s.RefreshDivision(ctx, division); err != nil {
				return fmt.Errorf("division %s: %w", division, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// snapshot loads the division roster and its matches, with hole data, into a
// standings computation input.
func (s *standingsService) snapshot(ctx context.Context, division models.Division) (scoring.StandingsInput, error) {
	var in scoring.StandingsInput

	teams, err := s.teamRepo.ListByDivision(ctx, division)
	if err != nil {
		return in, fmt.Errorf("failed to list teams for division %s: %w", division, err)
	}
	in.Teams = make([]models.Team, 0, len(teams))
	for _, t := range teams {
		in.Teams = append(in.Teams, *t)
	}

	matches, err := s.matchRepo.ListByDivision(ctx, division, nil)
	if err != nil {
		return in, fmt.Errorf("failed to list matches for division %s: %w", division, err)
	}
	for _, m := range matches {
		holes, err := s.holeRepo.ListByMatch(ctx, nil, m.ID)
		if err != nil {
			return in, err
		}
		m.Holes = holes
	}
	in.Matches = matches
	return in, nil
}
