package services

import (
	"context"
	"fmt"
	"sort"

	"torneo-mus/models"
	"torneo-mus/repositories"
)

// RankingService computes the tournament standings.
type RankingService interface {
	GetRanking(ctx context.Context) ([]models.RankingRow, error)
}

type rankingService struct {
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	gameRepo  repositories.GameRepository
}

func NewRankingService(
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	gameRepo repositories.GameRepository,
) RankingService {
	return &rankingService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		gameRepo:  gameRepo,
	}
}

func (s *rankingService) GetRanking(ctx context.Context) ([]models.RankingRow, error) {
	teams, err := s.teamRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for ranking: %w", err)
	}
	matches, err := s.matchRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for ranking: %w", err)
	}
	games, err := s.gameRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for ranking: %w", err)
	}

	return computeRanking(teams, matches, games), nil
}

// computeRanking builds one row per team (teams without matches get
// zero stats) and sorts descending by matches won, then game
// difference, then point difference. The sort is stable, so full ties
// keep team insertion order.
func computeRanking(teams []*models.Team, matches []*models.Match, games []*models.Game) []models.RankingRow {
	matchByID := make(map[int]*models.Match, len(matches))
	for _, m := range matches {
		matchByID[m.ID] = m
	}

	rows := make([]models.RankingRow, 0, len(teams))
	for _, team := range teams {
		row := models.RankingRow{
			TeamID: team.ID,
			Team:   team,
		}

		for _, m := range matches {
			isTeam1 := m.Team1ID == team.ID
			isTeam2 := m.Team2ID == team.ID
			if !isTeam1 && !isTeam2 {
				continue
			}
			row.MatchesTotal++

			if m.Status != models.MatchStatusCompleted {
				continue
			}
			row.MatchesPlayed++
			if m.WinnerID != nil && *m.WinnerID == team.ID {
				row.MatchesWon++
			}
			if isTeam1 {
				row.GameDiff += m.Team1GamesWon - m.Team2GamesWon
			} else {
				row.GameDiff += m.Team2GamesWon - m.Team1GamesWon
			}
		}

		// Point difference counts every recorded game, whatever the
		// state of its match.
		for _, g := range games {
			m, ok := matchByID[g.MatchID]
			if !ok {
				continue
			}
			switch team.ID {
			case m.Team1ID:
				row.PointDiff += g.Team1Score - g.Team2Score
			case m.Team2ID:
				row.PointDiff += g.Team2Score - g.Team1Score
			}
		}

		row.Played = fmt.Sprintf("%d/%d", row.MatchesPlayed, row.MatchesTotal)
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].MatchesWon != rows[j].MatchesWon {
			return rows[i].MatchesWon > rows[j].MatchesWon
		}
		if rows[i].GameDiff != rows[j].GameDiff {
			return rows[i].GameDiff > rows[j].GameDiff
		}
		return rows[i].PointDiff > rows[j].PointDiff
	})

	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}
