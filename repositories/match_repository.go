package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"torneo-mus/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match team conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	List(ctx context.Context, exec SQLExecutor) ([]*models.Match, error)
	UpdateResult(ctx context.Context, exec SQLExecutor, id int, team1GamesWon, team2GamesWon int, status models.MatchStatus, winnerID *int, completedAt *time.Time) error
	DeleteAll(ctx context.Context, exec SQLExecutor) error
	Count(ctx context.Context, exec SQLExecutor) (int, error)
	CountByStatus(ctx context.Context, exec SQLExecutor, status models.MatchStatus) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (team1_id, team2_id, status, team1_games_won, team2_games_won)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		match.Team1ID,
		match.Team2ID,
		match.Status,
		match.Team1GamesWon,
		match.Team2GamesWon,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, team1_id, team2_id, status, winner_id, team1_games_won, team2_games_won, created_at, completed_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.Team1ID,
		&match.Team2ID,
		&match.Status,
		&match.WinnerID,
		&match.Team1GamesWon,
		&match.Team2GamesWon,
		&match.CreatedAt,
		&match.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, exec SQLExecutor) ([]*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, team1_id, team2_id, status, winner_id, team1_games_won, team2_games_won, created_at, completed_at
		FROM matches
		ORDER BY id ASC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := rows.Scan(
			&match.ID,
			&match.Team1ID,
			&match.Team2ID,
			&match.Status,
			&match.WinnerID,
			&match.Team1GamesWon,
			&match.Team2GamesWon,
			&match.CreatedAt,
			&match.CompletedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, &match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, id int, team1GamesWon, team2GamesWon int, status models.MatchStatus, winnerID *int, completedAt *time.Time) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET team1_games_won = $1, team2_games_won = $2, status = $3, winner_id = $4, completed_at = $5
		WHERE id = $6`

	result, err := executor.ExecContext(ctx, query, team1GamesWon, team2GamesWon, status, winnerID, completedAt, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) Count(ctx context.Context, exec SQLExecutor) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

func (r *postgresMatchRepository) CountByStatus(ctx context.Context, exec SQLExecutor, status models.MatchStatus) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	if err := executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches by status %s: %w", status, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "matches_team1_id_fkey", "matches_team2_id_fkey", "matches_winner_id_fkey", "matches_distinct_teams":
			return ErrMatchTeamInvalid
		}
	}
	return err
}
