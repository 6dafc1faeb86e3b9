package services

import (
	"context"
	"testing"

	"torneo-mus/models"
)

func completedMatch(id, team1ID, team2ID, t1Won, t2Won int) *models.Match {
	m := &models.Match{
		ID:            id,
		Team1ID:       team1ID,
		Team2ID:       team2ID,
		Status:        models.MatchStatusCompleted,
		Team1GamesWon: t1Won,
		Team2GamesWon: t2Won,
	}
	winnerID := team1ID
	if t2Won > t1Won {
		winnerID = team2ID
	}
	m.WinnerID = &winnerID
	return m
}

func TestRankingZeroStatsKeepTeamOrder(t *testing.T) {
	teamRepo := &stubTeamRepo{}
	a := teamRepo.addTeam("Amaia-Beñat")
	b := teamRepo.addTeam("Koldo-Itziar")
	c := teamRepo.addTeam("Unai-Nerea")
	svc := NewRankingService(teamRepo, &stubMatchRepo{}, &stubGameRepo{})

	rows, err := svc.GetRanking(context.Background())
	if err != nil {
		t.Fatalf("GetRanking: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	wantOrder := []int{a.ID, b.ID, c.ID}
	for i, row := range rows {
		if row.TeamID != wantOrder[i] {
			t.Errorf("row %d team = %d, want %d", i, row.TeamID, wantOrder[i])
		}
		if row.Position != i+1 {
			t.Errorf("row %d position = %d, want %d", i, row.Position, i+1)
		}
		if row.MatchesWon != 0 || row.GameDiff != 0 || row.PointDiff != 0 {
			t.Errorf("row %d has non-zero stats: %+v", i, row)
		}
		if row.Played != "0/0" {
			t.Errorf("row %d played = %q, want 0/0", i, row.Played)
		}
	}
}

func TestRankingSortsByWinsThenGameDiffThenPointDiff(t *testing.T) {
	teams := []*models.Team{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
	}
	// B loses both matches; A and C hold one win each, but A's win
	// was cleaner, so game difference splits them.
	matches := []*models.Match{
		completedMatch(1, 1, 2, 3, 0),
		completedMatch(2, 3, 2, 3, 2),
	}

	rows := computeRanking(teams, matches, nil)

	wantOrder := []int{1, 3, 2}
	gotOrder := []int{rows[0].TeamID, rows[1].TeamID, rows[2].TeamID}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("order = %v, want %v", gotOrder, wantOrder)
		}
	}

	if rows[0].MatchesWon != 1 || rows[1].MatchesWon != 1 || rows[2].MatchesWon != 0 {
		t.Errorf("wins = %d, %d, %d, want 1, 1, 0", rows[0].MatchesWon, rows[1].MatchesWon, rows[2].MatchesWon)
	}
	if rows[0].GameDiff != 3 || rows[1].GameDiff != 1 || rows[2].GameDiff != -4 {
		t.Errorf("game diffs = %d, %d, %d, want 3, 1, -4", rows[0].GameDiff, rows[1].GameDiff, rows[2].GameDiff)
	}
	if rows[2].Played != "2/2" {
		t.Errorf("played = %q, want 2/2", rows[2].Played)
	}
}

func TestRankingPointDiffBreaksTies(t *testing.T) {
	teams := []*models.Team{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"},
	}
	// A beats C 3-1 and B beats C 3-1: same wins, same game diff.
	matches := []*models.Match{
		completedMatch(1, 1, 3, 3, 1),
		completedMatch(2, 2, 3, 3, 1),
	}
	// B's games were tighter than A's, so A leads on point difference.
	games := []*models.Game{
		{ID: 1, MatchID: 1, GameNumber: 1, Team1Score: 40, Team2Score: 5, WinnerID: 1},
		{ID: 2, MatchID: 2, GameNumber: 1, Team1Score: 40, Team2Score: 35, WinnerID: 2},
	}

	rows := computeRanking(teams, matches, games)

	if rows[0].TeamID != 1 || rows[1].TeamID != 2 {
		t.Fatalf("order = %d, %d, want 1, 2", rows[0].TeamID, rows[1].TeamID)
	}
	if rows[0].PointDiff != 35 || rows[1].PointDiff != 5 {
		t.Errorf("point diffs = %d, %d, want 35, 5", rows[0].PointDiff, rows[1].PointDiff)
	}
}

func TestRankingCountsPointsFromUnfinishedMatches(t *testing.T) {
	teams := []*models.Team{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
	}
	matches := []*models.Match{
		{ID: 1, Team1ID: 1, Team2ID: 2, Status: models.MatchStatusInProgress, Team1GamesWon: 1},
	}
	games := []*models.Game{
		{ID: 1, MatchID: 1, GameNumber: 1, Team1Score: 40, Team2Score: 28, WinnerID: 1},
	}

	rows := computeRanking(teams, matches, games)

	if rows[0].PointDiff != 12 || rows[1].PointDiff != -12 {
		t.Errorf("point diffs = %d, %d, want 12, -12", rows[0].PointDiff, rows[1].PointDiff)
	}
	// The match is not completed, so wins and game diff stay at zero.
	if rows[0].MatchesWon != 0 || rows[0].GameDiff != 0 {
		t.Errorf("unfinished match counted: wins=%d gameDiff=%d", rows[0].MatchesWon, rows[0].GameDiff)
	}
	if rows[0].MatchesPlayed != 0 || rows[0].MatchesTotal != 1 {
		t.Errorf("played/total = %d/%d, want 0/1", rows[0].MatchesPlayed, rows[0].MatchesTotal)
	}
	if rows[0].Played != "0/1" {
		t.Errorf("played = %q, want 0/1", rows[0].Played)
	}
}
