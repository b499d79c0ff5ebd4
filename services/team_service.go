package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/S-Matheka/patrons-cup-live-sub000/repositories"
	"github.com/S-Matheka/patrons-cup-live-sub000/storage"
)

type TeamService interface {
	Create(ctx context.Context, input TeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByDivision(ctx context.Context, division models.Division) ([]*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	Update(ctx context.Context, id int, input TeamInput) (*models.Team, error)
	Delete(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error)
}

type TeamInput struct {
	Name     string          `json:"name"`
	Division models.Division `json:"division"`
	Seed     int             `json:"seed"`
	Color    *string         `json:"color,omitempty"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, playerRepo repositories.PlayerRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
	}
}

func (in TeamInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrTeamNameRequired
	}
	if !in.Division.Valid() {
		return ErrInvalidDivision
	}
	if in.Seed <= 0 {
		return ErrInvalidSeed
	}
	return nil
}

func (s *teamService) Create(ctx context.Context, input TeamInput) (*models.Team, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:     strings.TrimSpace(input.Name),
		Division: input.Division,
		Seed:     input.Seed,
		Color:    input.Color,
	}
	if err := s.teamRepo.Create(ctx, nil, team); err != nil {
		return nil, mapTeamRepoError(err)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}
	players, err := s.playerRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load players for team %d: %w", id, err)
	}
	team.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		team.Players = append(team.Players, *p)
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) ListByDivision(ctx context.Context, division models.Division) ([]*models.Team, error) {
	if !division.Valid() {
		return nil, ErrInvalidDivision
	}
	teams, err := s.teamRepo.ListByDivision(ctx, division)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for division %s: %w", division, err)
	}
	for _, t := range teams {
		s.populateLogoURL(t)
	}
	return teams, nil
}

func (s *teamService) List(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, t := range teams {
		s.populateLogoURL(t)
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, id int, input TeamInput) (*models.Team, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}

	team.Name = strings.TrimSpace(input.Name)
	team.Division = input.Division
	team.Seed = input.Seed
	team.Color = input.Color

	if err := s.teamRepo.Update(ctx, nil, team); err != nil {
		return nil, mapTeamRepoError(err)
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return mapTeamRepoError(err)
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return mapTeamRepoError(err)
	}
	if team.LogoKey != nil && s.uploader != nil {
		// Best effort; the team row is already gone.
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}

	key := fmt.Sprintf("logos/team_%d", id)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %d: %w", id, err)
	}
	if err := s.teamRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, mapTeamRepoError(err)
	}
	team.LogoKey = &result.Key
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}
}

func mapTeamRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamSeedConflict):
		return ErrTeamSeedTaken
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameTaken
	}
	return err
}
