package services

import (
	"context"
	"fmt"

	"torneo-mus/models"
	"torneo-mus/repositories"
)

// ScheduleService regenerates the round-robin schedule: every team
// plays every other team exactly once.
type ScheduleService interface {
	GenerateSchedule(ctx context.Context) ([]*models.Match, error)
}

type scheduleService struct {
	tx        repositories.Transactor
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	gameRepo  repositories.GameRepository
	notifier  LiveNotifier
}

func NewScheduleService(
	tx repositories.Transactor,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	gameRepo repositories.GameRepository,
	notifier LiveNotifier,
) ScheduleService {
	return &scheduleService{
		tx:        tx,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		gameRepo:  gameRepo,
		notifier:  notifier,
	}
}

// GenerateSchedule discards all existing matches (and their games) and
// creates one pending match per unordered pair of teams, all in a
// single transaction. Pair order follows team insertion order and
// carries no scheduling semantics.
func (s *scheduleService) GenerateSchedule(ctx context.Context) ([]*models.Match, error) {
	teams, err := s.teamRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for schedule generation: %w", err)
	}
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}

	matches := make([]*models.Match, 0, len(teams)*(len(teams)-1)/2)

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		// Games reference matches, so they go first.
		if txErr := s.gameRepo.DeleteAll(ctx, exec); txErr != nil {
			return txErr
		}
		if txErr := s.matchRepo.DeleteAll(ctx, exec); txErr != nil {
			return txErr
		}

		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				match := &models.Match{
					Team1ID: teams[i].ID,
					Team2ID: teams[j].ID,
					Status:  models.MatchStatusPending,
				}
				if txErr := s.matchRepo.Create(ctx, exec, match); txErr != nil {
					return txErr
				}
				matches = append(matches, match)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyScheduleGenerated(len(matches))
	}
	return matches, nil
}
