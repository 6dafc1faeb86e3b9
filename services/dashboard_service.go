package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/sync/errgroup"

	"torneo-mus/models"
	"torneo-mus/repositories"
)

// DashboardService aggregates the tournament overview: counts,
// completion progress and a QR code pointing at the public URL.
type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	teamRepo      repositories.TeamRepository
	matchRepo     repositories.MatchRepository
	publicBaseURL string
}

func NewDashboardService(
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	publicBaseURL string,
) DashboardService {
	return &dashboardService{
		teamRepo:      teamRepo,
		matchRepo:     matchRepo,
		publicBaseURL: publicBaseURL,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var teamsTotal, matchesTotal, completed int

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teamsTotal, err = s.teamRepo.Count(gCtx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		matchesTotal, err = s.matchRepo.Count(gCtx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = s.matchRepo.CountByStatus(gCtx, nil, models.MatchStatusCompleted)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	var progress float64
	if matchesTotal > 0 {
		progress = math.Round(float64(completed)/float64(matchesTotal)*1000) / 10
	}

	stats := models.DashboardStats{
		TeamsTotal:         teamsTotal,
		MatchesTotal:       matchesTotal,
		CompletedMatches:   completed,
		ProgressPercentage: progress,
		AppURL:             s.publicBaseURL,
	}

	if png, err := qrcode.Encode(s.publicBaseURL, qrcode.Medium, 256); err == nil {
		stats.QRCodeBase64 = base64.StdEncoding.EncodeToString(png)
	}

	return stats, nil
}
