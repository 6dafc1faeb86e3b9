package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"torneo-mus/models"
	"torneo-mus/repositories"
	"torneo-mus/storage"
)

type CreateTeamInput struct {
	Name    string `json:"name"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]*models.Team, error)
	UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	player1 := strings.TrimSpace(input.Player1)
	player2 := strings.TrimSpace(input.Player2)

	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if player1 == "" || player2 == "" {
		return nil, ErrPlayerNamesRequired
	}

	team := &models.Team{
		Name:    name,
		Player1: player1,
		Player2: player2,
	}
	if err := s.teamRepo.Create(ctx, nil, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameTaken) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team %d: %w", id, err)
	}
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		s.fillLogoURL(team)
	}
	return teams, nil
}

var logoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoUploadsDisabled
	}

	ext, ok := logoExtensions[contentType]
	if !ok {
		return nil, ErrLogoUnsupportedType
	}

	team, err := s.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo%s", teamID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %d: %w", teamID, err)
	}

	// Extension changes leave the previous object behind; remove it.
	if team.LogoKey != nil && *team.LogoKey != key {
		if delErr := s.uploader.Delete(ctx, *team.LogoKey); delErr != nil {
			return nil, fmt.Errorf("failed to delete previous logo for team %d: %w", teamID, delErr)
		}
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, nil, teamID, &key); err != nil {
		return nil, fmt.Errorf("failed to store logo key for team %d: %w", teamID, err)
	}

	team.LogoKey = &key
	location := result.Location
	team.LogoURL = &location
	return team, nil
}

func (s *teamService) fillLogoURL(team *models.Team) {
	if s.uploader == nil || team.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.LogoKey)
	if url != "" {
		team.LogoURL = &url
	}
}
