package services

import (
	"context"
	"encoding/base64"
	"testing"

	"torneo-mus/models"
)

func TestDashboardStats(t *testing.T) {
	teamRepo := &stubTeamRepo{}
	for _, name := range []string{"A", "B", "C", "D"} {
		teamRepo.addTeam(name)
	}
	matchRepo := &stubMatchRepo{}
	for i := 0; i < 6; i++ {
		matchRepo.addMatch(1, 2)
	}
	matchRepo.matches[0].Status = models.MatchStatusCompleted
	matchRepo.matches[1].Status = models.MatchStatusCompleted
	matchRepo.matches[2].Status = models.MatchStatusInProgress

	svc := NewDashboardService(teamRepo, matchRepo, "https://mus.example.com/")

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TeamsTotal != 4 {
		t.Errorf("teams = %d, want 4", stats.TeamsTotal)
	}
	if stats.MatchesTotal != 6 || stats.CompletedMatches != 2 {
		t.Errorf("matches = %d completed = %d, want 6 and 2", stats.MatchesTotal, stats.CompletedMatches)
	}
	// 2 of 6 rounds to one decimal.
	if stats.ProgressPercentage != 33.3 {
		t.Errorf("progress = %v, want 33.3", stats.ProgressPercentage)
	}
	if stats.AppURL != "https://mus.example.com/" {
		t.Errorf("app URL = %q", stats.AppURL)
	}
	if stats.QRCodeBase64 == "" {
		t.Error("QR code missing")
	} else if _, err := base64.StdEncoding.DecodeString(stats.QRCodeBase64); err != nil {
		t.Errorf("QR code is not valid base64: %v", err)
	}
}

func TestDashboardStatsNoMatches(t *testing.T) {
	svc := NewDashboardService(&stubTeamRepo{}, &stubMatchRepo{}, "https://mus.example.com/")

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.ProgressPercentage != 0 {
		t.Errorf("progress = %v, want 0", stats.ProgressPercentage)
	}
}
