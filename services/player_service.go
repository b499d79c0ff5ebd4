package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/S-Matheka/patrons-cup-live-sub000/repositories"
)

type PlayerService interface {
	Create(ctx context.Context, input PlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	Update(ctx context.Context, id int, input PlayerInput) (*models.Player, error)
	Delete(ctx context.Context, id int) error
}

type PlayerInput struct {
	TeamID      int    `json:"team_id"`
	Name        string `json:"name"`
	Handicap    int    `json:"handicap"`
	IsPro       bool   `json:"is_pro"`
	IsJunior    bool   `json:"is_junior"`
	IsExOfficio bool   `json:"is_ex_officio"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
	}
}

func (in PlayerInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrValidationFailed
	}
	if in.Handicap < 0 {
		return ErrInvalidHandicap
	}
	return nil
}

func (s *playerService) Create(ctx context.Context, input PlayerInput) (*models.Player, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to check team %d: %w", input.TeamID, err)
	}

	player := &models.Player{
		TeamID:      input.TeamID,
		Name:        strings.TrimSpace(input.Name),
		Handicap:    input.Handicap,
		IsPro:       input.IsPro,
		IsJunior:    input.IsJunior,
		IsExOfficio: input.IsExOfficio,
	}
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		return nil, mapPlayerRepoError(err)
	}
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}
	return player, nil
}

func (s *playerService) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	return players, nil
}

func (s *playerService) Update(ctx context.Context, id int, input PlayerInput) (*models.Player, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}

	player.TeamID = input.TeamID
	player.Name = strings.TrimSpace(input.Name)
	player.Handicap = input.Handicap
	player.IsPro = input.IsPro
	player.IsJunior = input.IsJunior
	player.IsExOfficio = input.IsExOfficio

	if err := s.playerRepo.Update(ctx, nil, player); err != nil {
		return nil, mapPlayerRepoError(err)
	}
	return player, nil
}

func (s *playerService) Delete(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return mapPlayerRepoError(err)
	}
	return nil
}

func mapPlayerRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPlayerTeamInvalid):
		return ErrTeamNotFound
	}
	return err
}
