package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"torneo-mus/models"
	"torneo-mus/repositories"
)

const (
	// matchWinThreshold is the number of game wins that decides a match
	// (best-of-5, first to 3).
	matchWinThreshold = 3
	// gameWinScore is the Mus score that wins a single game.
	gameWinScore = 40
)

// ResultService records match results, either as a final score in one
// shot or game by game.
type ResultService interface {
	SetResult(ctx context.Context, matchID, team1GamesWon, team2GamesWon int) (*models.Match, error)
	AddGame(ctx context.Context, matchID, team1Score, team2Score int) (*models.Match, error)
	EditGame(ctx context.Context, matchID, gameID, team1Score, team2Score int) (*models.Match, error)
	DeleteGame(ctx context.Context, matchID, gameID int) (*models.Match, error)
	ListMatches(ctx context.Context) ([]*models.Match, error)
	GetMatch(ctx context.Context, matchID int) (*models.Match, error)
}

type resultService struct {
	tx        repositories.Transactor
	matchRepo repositories.MatchRepository
	gameRepo  repositories.GameRepository
	teamRepo  repositories.TeamRepository
	notifier  LiveNotifier
	now       func() time.Time
}

func NewResultService(
	tx repositories.Transactor,
	matchRepo repositories.MatchRepository,
	gameRepo repositories.GameRepository,
	teamRepo repositories.TeamRepository,
	notifier LiveNotifier,
) ResultService {
	return &resultService{
		tx:        tx,
		matchRepo: matchRepo,
		gameRepo:  gameRepo,
		teamRepo:  teamRepo,
		notifier:  notifier,
		now:       time.Now,
	}
}

// matchOutcome is the state derived from a match's recorded games.
type matchOutcome struct {
	status    models.MatchStatus
	winnerID  *int
	team1Wins int
	team2Wins int
}

// deriveOutcome recomputes a match's status and winner from scratch
// from its full game list. No cap is applied to the win counts: after
// edits a side can hold more than 3 wins, and if both sides reach 3
// team1 is checked first and declared winner.
func deriveOutcome(match *models.Match, games []*models.Game) matchOutcome {
	var out matchOutcome
	for _, g := range games {
		switch g.WinnerID {
		case match.Team1ID:
			out.team1Wins++
		case match.Team2ID:
			out.team2Wins++
		}
	}

	switch {
	case out.team1Wins >= matchWinThreshold:
		out.status = models.MatchStatusCompleted
		winnerID := match.Team1ID
		out.winnerID = &winnerID
	case out.team2Wins >= matchWinThreshold:
		out.status = models.MatchStatusCompleted
		winnerID := match.Team2ID
		out.winnerID = &winnerID
	case len(games) > 0:
		out.status = models.MatchStatusInProgress
	default:
		out.status = models.MatchStatusPending
	}
	return out
}

// validateFinalScore checks a directly entered final score: first to
// exactly 3 games, loser between 0 and 2. A 4-3 or 3-4 entry is
// rejected even though one side holds 3.
func validateFinalScore(team1GamesWon, team2GamesWon int) error {
	if team1GamesWon < 0 || team2GamesWon < 0 {
		return ErrNegativeScore
	}
	if team1GamesWon == team2GamesWon {
		return ErrResultTied
	}
	hi, lo := team1GamesWon, team2GamesWon
	if team2GamesWon > team1GamesWon {
		hi, lo = team2GamesWon, team1GamesWon
	}
	if hi != matchWinThreshold || lo > matchWinThreshold-1 {
		return ErrResultNotBestOfFive
	}
	return nil
}

func validateGameScore(team1Score, team2Score int) error {
	if team1Score < 0 || team2Score < 0 {
		return ErrNegativeScore
	}
	if team1Score != gameWinScore && team2Score != gameWinScore {
		return ErrGameScoreNotForty
	}
	if team1Score == gameWinScore && team2Score == gameWinScore {
		return ErrGameBothForty
	}
	return nil
}

// SetResult writes the final games-won counters of a match in one
// shot. Every call is a full overwrite, so it doubles as the edit
// operation.
func (s *resultService) SetResult(ctx context.Context, matchID, team1GamesWon, team2GamesWon int) (*models.Match, error) {
	match, err := s.getMatch(ctx, nil, matchID)
	if err != nil {
		return nil, err
	}
	if err := validateFinalScore(team1GamesWon, team2GamesWon); err != nil {
		return nil, err
	}

	winnerID := match.Team1ID
	if team2GamesWon == matchWinThreshold {
		winnerID = match.Team2ID
	}
	completedAt := s.now()

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.matchRepo.UpdateResult(ctx, exec, matchID,
			team1GamesWon, team2GamesWon, models.MatchStatusCompleted, &winnerID, &completedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set result for match %d: %w", matchID, err)
	}

	match.Team1GamesWon = team1GamesWon
	match.Team2GamesWon = team2GamesWon
	match.Status = models.MatchStatusCompleted
	match.WinnerID = &winnerID
	match.CompletedAt = &completedAt

	s.notifyMatchUpdated(match)
	return match, nil
}

func (s *resultService) AddGame(ctx context.Context, matchID, team1Score, team2Score int) (*models.Match, error) {
	var match *models.Match
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var txErr error
		match, txErr = s.getMatch(ctx, exec, matchID)
		if txErr != nil {
			return txErr
		}
		if txErr = validateGameScore(team1Score, team2Score); txErr != nil {
			return txErr
		}

		winnerID := match.Team1ID
		if team2Score == gameWinScore {
			winnerID = match.Team2ID
		}

		number, txErr := s.gameRepo.NextGameNumber(ctx, exec, matchID)
		if txErr != nil {
			return txErr
		}

		game := &models.Game{
			MatchID:    matchID,
			GameNumber: number,
			Team1Score: team1Score,
			Team2Score: team2Score,
			WinnerID:   winnerID,
		}
		if txErr = s.gameRepo.Create(ctx, exec, game); txErr != nil {
			return txErr
		}

		return s.applyDerivedOutcome(ctx, exec, match)
	})
	if err != nil {
		return nil, err
	}

	s.notifyMatchUpdated(match)
	return match, nil
}

func (s *resultService) EditGame(ctx context.Context, matchID, gameID, team1Score, team2Score int) (*models.Match, error) {
	var match *models.Match
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var txErr error
		match, txErr = s.getMatch(ctx, exec, matchID)
		if txErr != nil {
			return txErr
		}
		if txErr = validateGameScore(team1Score, team2Score); txErr != nil {
			return txErr
		}

		game, txErr := s.gameRepo.GetByMatchAndID(ctx, exec, matchID, gameID)
		if txErr != nil {
			if errors.Is(txErr, repositories.ErrGameNotFound) {
				return ErrGameNotFound
			}
			return txErr
		}

		winnerID := match.Team1ID
		if team2Score == gameWinScore {
			winnerID = match.Team2ID
		}
		if txErr = s.gameRepo.UpdateScores(ctx, exec, game.ID, team1Score, team2Score, winnerID); txErr != nil {
			return txErr
		}

		return s.applyDerivedOutcome(ctx, exec, match)
	})
	if err != nil {
		return nil, err
	}

	s.notifyMatchUpdated(match)
	return match, nil
}

func (s *resultService) DeleteGame(ctx context.Context, matchID, gameID int) (*models.Match, error) {
	var match *models.Match
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var txErr error
		match, txErr = s.getMatch(ctx, exec, matchID)
		if txErr != nil {
			return txErr
		}

		if txErr = s.gameRepo.Delete(ctx, exec, matchID, gameID); txErr != nil {
			if errors.Is(txErr, repositories.ErrGameNotFound) {
				return ErrGameNotFound
			}
			return txErr
		}

		return s.applyDerivedOutcome(ctx, exec, match)
	})
	if err != nil {
		return nil, err
	}

	s.notifyMatchUpdated(match)
	return match, nil
}

// applyDerivedOutcome re-derives the match state from its current game
// list and persists it. Called after every game mutation.
func (s *resultService) applyDerivedOutcome(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	games, err := s.gameRepo.ListByMatch(ctx, exec, match.ID)
	if err != nil {
		return err
	}

	out := deriveOutcome(match, games)

	var completedAt *time.Time
	if out.status == models.MatchStatusCompleted {
		now := s.now()
		completedAt = &now
	}

	if err := s.matchRepo.UpdateResult(ctx, exec, match.ID,
		out.team1Wins, out.team2Wins, out.status, out.winnerID, completedAt); err != nil {
		return err
	}

	match.Team1GamesWon = out.team1Wins
	match.Team2GamesWon = out.team2Wins
	match.Status = out.status
	match.WinnerID = out.winnerID
	match.CompletedAt = completedAt
	match.Games = make([]models.Game, len(games))
	for i, g := range games {
		match.Games[i] = *g
	}
	return nil
}

func (s *resultService) ListMatches(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	if err := s.attachTeams(ctx, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *resultService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.getMatch(ctx, nil, matchID)
	if err != nil {
		return nil, err
	}

	games, err := s.gameRepo.ListByMatch(ctx, nil, matchID)
	if err != nil {
		return nil, err
	}
	match.Games = make([]models.Game, len(games))
	for i, g := range games {
		match.Games[i] = *g
	}

	if err := s.attachTeams(ctx, []*models.Match{match}); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *resultService) getMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, exec, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	return match, nil
}

func (s *resultService) attachTeams(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	teams, err := s.teamRepo.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load teams for matches: %w", err)
	}
	byID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	for _, m := range matches {
		m.Team1 = byID[m.Team1ID]
		m.Team2 = byID[m.Team2ID]
	}
	return nil
}

func (s *resultService) notifyMatchUpdated(match *models.Match) {
	if s.notifier != nil {
		s.notifier.NotifyMatchUpdated(match)
	}
}
