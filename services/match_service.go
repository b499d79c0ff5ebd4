package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/S-Matheka/patrons-cup-live-sub000/realtime"
	"github.com/S-Matheka/patrons-cup-live-sub000/repositories"
	"github.com/S-Matheka/patrons-cup-live-sub000/scoring"
)

// StandingsRefresher lets the match flow trigger a live standings rebuild
// without depending on the full standings service surface.
type StandingsRefresher interface {
	RefreshLiveDivision(ctx context.Context, division models.Division) error
}

type MatchService interface {
	Create(ctx context.Context, input MatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*MatchDetail, error)
	ListByDivision(ctx context.Context, division models.Division, status *models.MatchStatus) ([]*models.Match, error)
	Draw(ctx context.Context) ([]*models.Match, error)
	Update(ctx context.Context, id int, input MatchInput) (*models.Match, error)
	Delete(ctx context.Context, id int) error

	EnterScore(ctx context.Context, matchID int, input ScoreInput) (*MatchDetail, error)
	SetStatus(ctx context.Context, matchID int, status models.MatchStatus) (*models.Match, error)
	ClearScores(ctx context.Context, matchID int) (*models.Match, error)
	PromoteDueMatches(ctx context.Context, now time.Time) (int, error)
}

type MatchInput struct {
	Division models.Division  `json:"division"`
	Type     models.MatchType `json:"type"`
	Session  models.Session   `json:"session"`
	Date     time.Time        `json:"date"`
	TeeTime  *time.Time       `json:"tee_time,omitempty"`
	TeamAID  int              `json:"team_a_id"`
	TeamBID  int              `json:"team_b_id"`
	TeamCID  *int             `json:"team_c_id,omitempty"`
}

// ScoreInput writes one team's gross strokes on one hole. A nil Strokes
// clears that cell, so a scorer can back out a mistaken entry.
type ScoreInput struct {
	Number  int  `json:"number"`
	TeamID  int  `json:"team_id"`
	Strokes *int `json:"strokes"`
}

// MatchDetail is a match with its hole records loaded and the match-play
// state resolved from them.
type MatchDetail struct {
	*models.Match
	Result   scoring.Result          `json:"result"`
	ThreeWay *scoring.ThreeWayResult `json:"three_way,omitempty"`
}

type matchService struct {
	db         *sql.DB
	matchRepo  repositories.MatchRepository
	holeRepo   repositories.HoleRepository
	teamRepo   repositories.TeamRepository
	courseRepo repositories.CourseRepository
	standings  StandingsRefresher
	hub        *realtime.Hub
	logger     *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	holeRepo repositories.HoleRepository,
	teamRepo repositories.TeamRepository,
	courseRepo repositories.CourseRepository,
	standings StandingsRefresher,
	hub *realtime.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:         db,
		matchRepo:  matchRepo,
		holeRepo:   holeRepo,
		teamRepo:   teamRepo,
		courseRepo: courseRepo,
		standings:  standings,
		hub:        hub,
		logger:     logger,
	}
}

func divisionRoom(division models.Division) string {
	return fmt.Sprintf("division_%s", division)
}

func (in MatchInput) validate() error {
	if !in.Division.Valid() {
		return ErrInvalidDivision
	}
	switch in.Type {
	case models.MatchTypeFourBall, models.MatchTypeFoursomes, models.MatchTypeSingles:
	default:
		return ErrInvalidMatchType
	}
	switch in.Session {
	case models.SessionAM, models.SessionPM:
	default:
		return ErrInvalidSession
	}
	if in.TeamAID == in.TeamBID {
		return ErrSameTeamsInMatch
	}
	if in.TeamCID != nil && (*in.TeamCID == in.TeamAID || *in.TeamCID == in.TeamBID) {
		return ErrSameTeamsInMatch
	}
	return nil
}

func (s *matchService) Create(ctx context.Context, input MatchInput) (*models.Match, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load course for new match: %w", err)
	}
	pars := make([]int, 0, len(course.Holes))
	for _, h := range course.Holes {
		pars = append(pars, h.Par)
	}

	match := &models.Match{
		Division: input.Division,
		Type:     input.Type,
		Session:  input.Session,
		Date:     input.Date,
		TeeTime:  input.TeeTime,
		TeamAID:  input.TeamAID,
		TeamBID:  input.TeamBID,
		TeamCID:  input.TeamCID,
		Status:   models.MatchStatusScheduled,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.matchRepo.Create(ctx, tx, match); err != nil {
		return nil, mapMatchRepoError(err)
	}
	if err := s.holeRepo.CreateForMatch(ctx, tx, match.ID, pars); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match creation: %w", err)
	}
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*MatchDetail, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	if err := s.loadHoles(ctx, match); err != nil {
		return nil, err
	}
	if err := s.loadTeams(ctx, match); err != nil {
		return nil, err
	}
	return s.detail(match), nil
}

func (s *matchService) ListByDivision(ctx context.Context, division models.Division, status *models.MatchStatus) ([]*models.Match, error) {
	if !division.Valid() {
		return nil, ErrInvalidDivision
	}
	matches, err := s.matchRepo.ListByDivision(ctx, division, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for division %s: %w", division, err)
	}
	for _, m := range matches {
		if err := s.loadHoles(ctx, m); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

// Draw lists every fixture across the divisions in playing order, without
// hole data. It backs the printed-programme style schedule page.
func (s *matchService) Draw(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list draw: %w", err)
	}
	return matches, nil
}

func (s *matchService) Update(ctx context.Context, id int, input MatchInput) (*models.Match, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, ErrMatchLocked
	}

	match.Division = input.Division
	match.Type = input.Type
	match.Session = input.Session
	match.Date = input.Date
	match.TeeTime = input.TeeTime
	match.TeamAID = input.TeamAID
	match.TeamBID = input.TeamBID
	match.TeamCID = input.TeamCID

	if err := s.matchRepo.Update(ctx, nil, match); err != nil {
		return nil, mapMatchRepoError(err)
	}
	return match, nil
}

func (s *matchService) Delete(ctx context.Context, id int) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		return mapMatchRepoError(err)
	}
	return nil
}

// EnterScore records one side's strokes on a hole, moves a scheduled match
// in progress on first contact, and completes the match automatically when
// the resolved state says no outcome can change.
func (s *matchService) EnterScore(ctx context.Context, matchID int, input ScoreInput) (*MatchDetail, error) {
	if input.Number < 1 || input.Number > scoring.TotalHolesPerMatch {
		return nil, ErrInvalidHoleNumber
	}
	if input.Strokes != nil && *input.Strokes <= 0 {
		return nil, ErrInvalidStrokeCount
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, ErrMatchLocked
	}

	side, err := sideForTeam(match, input.TeamID)
	if err != nil {
		return nil, err
	}

	if err := s.holeRepo.UpdateScore(ctx, nil, matchID, input.Number, side, input.Strokes); err != nil {
		if errors.Is(err, repositories.ErrHoleNotFound) {
			return nil, ErrInvalidHoleNumber
		}
		return nil, err
	}

	if match.Status == models.MatchStatusScheduled {
		if err := s.matchRepo.UpdateStatus(ctx, nil, matchID, models.MatchStatusInProgress); err != nil {
			return nil, mapMatchRepoError(err)
		}
		match.Status = models.MatchStatusInProgress
	}

	if err := s.loadHoles(ctx, match); err != nil {
		return nil, err
	}
	detail := s.detail(match)

	completed := detail.Result.Completed
	if detail.ThreeWay != nil {
		completed = detail.ThreeWay.Completed
	}
	if completed && match.Status != models.MatchStatusCompleted {
		if err := s.matchRepo.UpdateStatus(ctx, nil, matchID, models.MatchStatusCompleted); err != nil {
			return nil, mapMatchRepoError(err)
		}
		match.Status = models.MatchStatusCompleted
	}

	s.hub.BroadcastToRoom(divisionRoom(match.Division), realtime.Message{
		Type:    realtime.MessageScoreUpdated,
		Payload: detail,
	})
	s.refreshStandings(ctx, match.Division)

	return detail, nil
}

// SetStatus applies an operator-driven transition. Completing an unfinished
// match is allowed and the pairing then stands as it lies; reopening a
// completed match drops it back to in progress so scoring can resume.
func (s *matchService) SetStatus(ctx context.Context, matchID int, status models.MatchStatus) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	if !validStatusChange(match.Status, status) {
		return nil, ErrInvalidStatusChange
	}

	if err := s.matchRepo.UpdateStatus(ctx, nil, matchID, status); err != nil {
		return nil, mapMatchRepoError(err)
	}
	match.Status = status

	s.hub.BroadcastToRoom(divisionRoom(match.Division), realtime.Message{
		Type:    realtime.MessageMatchUpdated,
		Payload: match,
	})
	s.refreshStandings(ctx, match.Division)

	return match, nil
}

func validStatusChange(from, to models.MatchStatus) bool {
	switch from {
	case models.MatchStatusScheduled:
		return to == models.MatchStatusInProgress
	case models.MatchStatusInProgress:
		return to == models.MatchStatusCompleted
	case models.MatchStatusCompleted:
		return to == models.MatchStatusInProgress
	}
	return false
}

// ClearScores wipes every hole of the match and resets it to scheduled, in
// one transaction. This is the recovery path when a card was entered against
// the wrong match.
func (s *matchService) ClearScores(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.holeRepo.ClearByMatch(ctx, tx, matchID); err != nil {
		return nil, fmt.Errorf("failed to clear scores for match %d: %w", matchID, err)
	}
	if err := s.matchRepo.UpdateStatus(ctx, tx, matchID, models.MatchStatusScheduled); err != nil {
		return nil, mapMatchRepoError(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit score clear: %w", err)
	}
	match.Status = models.MatchStatusScheduled
	match.Holes = nil

	s.hub.BroadcastToRoom(divisionRoom(match.Division), realtime.Message{
		Type:    realtime.MessageMatchUpdated,
		Payload: match,
	})
	s.refreshStandings(ctx, match.Division)

	return match, nil
}

// PromoteDueMatches flips scheduled matches whose tee time has passed to in
// progress. The background scheduler calls this on an interval.
func (s *matchService) PromoteDueMatches(ctx context.Context, now time.Time) (int, error) {
	due, err := s.matchRepo.ListScheduledDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list due matches: %w", err)
	}
	promoted := 0
	for _, m := range due {
		if err := s.matchRepo.UpdateStatus(ctx, nil, m.ID, models.MatchStatusInProgress); err != nil {
			s.logger.Error("failed to promote due match", "match_id", m.ID, "error", err)
			continue
		}
		m.Status = models.MatchStatusInProgress
		s.hub.BroadcastToRoom(divisionRoom(m.Division), realtime.Message{
			Type:    realtime.MessageMatchUpdated,
			Payload: m,
		})
		promoted++
	}
	return promoted, nil
}

func (s *matchService) loadHoles(ctx context.Context, match *models.Match) error {
	holes, err := s.holeRepo.ListByMatch(ctx, nil, match.ID)
	if err != nil {
		return err
	}
	match.Holes = holes
	return nil
}

func (s *matchService) loadTeams(ctx context.Context, match *models.Match) error {
	var err error
	if match.TeamA, err = s.teamRepo.GetByID(ctx, match.TeamAID); err != nil {
		return mapTeamRepoError(err)
	}
	if match.TeamB, err = s.teamRepo.GetByID(ctx, match.TeamBID); err != nil {
		return mapTeamRepoError(err)
	}
	if match.TeamCID != nil {
		if match.TeamC, err = s.teamRepo.GetByID(ctx, *match.TeamCID); err != nil {
			return mapTeamRepoError(err)
		}
	}
	return nil
}

func (s *matchService) detail(match *models.Match) *MatchDetail {
	d := &MatchDetail{
		Match:  match,
		Result: scoring.ResolveMatch(match),
	}
	if match.IsThreeWay() {
		tw := scoring.ResolveThreeWay(match)
		d.ThreeWay = &tw
	}
	return d
}

func (s *matchService) refreshStandings(ctx context.Context, division models.Division) {
	if s.standings == nil {
		return
	}
	if err := s.standings.RefreshLiveDivision(ctx, division); err != nil {
		s.logger.Error("failed to refresh standings after match change", "division", division, "error", err)
	}
}

func sideForTeam(match *models.Match, teamID int) (repositories.HoleSide, error) {
	switch {
	case teamID == match.TeamAID:
		return repositories.HoleSideA, nil
	case teamID == match.TeamBID:
		return repositories.HoleSideB, nil
	case match.TeamCID != nil && teamID == *match.TeamCID:
		return repositories.HoleSideC, nil
	}
	return "", ErrTeamNotFound
}

func mapMatchRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchTeamInvalid):
		return ErrTeamNotFound
	}
	return err
}
