package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"torneo-mus/models"
)

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameMatchInvalid = errors.New("game match conflict or invalid")
)

type GameRepository interface {
	Create(ctx context.Context, exec SQLExecutor, game *models.Game) error
	GetByMatchAndID(ctx context.Context, exec SQLExecutor, matchID, gameID int) (*models.Game, error)
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Game, error)
	ListAll(ctx context.Context, exec SQLExecutor) ([]*models.Game, error)
	NextGameNumber(ctx context.Context, exec SQLExecutor, matchID int) (int, error)
	UpdateScores(ctx context.Context, exec SQLExecutor, gameID, team1Score, team2Score, winnerID int) error
	Delete(ctx context.Context, exec SQLExecutor, matchID, gameID int) error
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGameRepository) Create(ctx context.Context, exec SQLExecutor, game *models.Game) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO games (match_id, game_number, team1_score, team2_score, winner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		game.MatchID,
		game.GameNumber,
		game.Team1Score,
		game.Team2Score,
		game.WinnerID,
	).Scan(&game.ID, &game.CreatedAt)

	return r.handleGameError(err)
}

// GetByMatchAndID scopes the lookup to the match so a game id belonging
// to another match resolves to not-found.
func (r *postgresGameRepository) GetByMatchAndID(ctx context.Context, exec SQLExecutor, matchID, gameID int) (*models.Game, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, match_id, game_number, team1_score, team2_score, winner_id, created_at
		FROM games
		WHERE id = $1 AND match_id = $2`

	game := &models.Game{}
	err := executor.QueryRowContext(ctx, query, gameID, matchID).Scan(
		&game.ID,
		&game.MatchID,
		&game.GameNumber,
		&game.Team1Score,
		&game.Team2Score,
		&game.WinnerID,
		&game.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to scan game %d of match %d: %w", gameID, matchID, err)
	}
	return game, nil
}

func (r *postgresGameRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.Game, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, match_id, game_number, team1_score, team2_score, winner_id, created_at
		FROM games
		WHERE match_id = $1
		ORDER BY game_number ASC`

	rows, err := executor.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query games for match %d: %w", matchID, err)
	}
	defer rows.Close()
	return r.collectGames(rows)
}

func (r *postgresGameRepository) ListAll(ctx context.Context, exec SQLExecutor) ([]*models.Game, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, match_id, game_number, team1_score, team2_score, winner_id, created_at
		FROM games
		ORDER BY match_id ASC, game_number ASC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()
	return r.collectGames(rows)
}

func (r *postgresGameRepository) collectGames(rows *sql.Rows) ([]*models.Game, error) {
	games := make([]*models.Game, 0)
	for rows.Next() {
		var game models.Game
		if scanErr := rows.Scan(
			&game.ID,
			&game.MatchID,
			&game.GameNumber,
			&game.Team1Score,
			&game.Team2Score,
			&game.WinnerID,
			&game.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", scanErr)
		}
		games = append(games, &game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during game rows iteration: %w", err)
	}
	return games, nil
}

// NextGameNumber returns one past the highest game number recorded for
// the match. Counting rows instead would reuse a surviving number after
// a mid-sequence delete and trip the uniqueness constraint.
func (r *postgresGameRepository) NextGameNumber(ctx context.Context, exec SQLExecutor, matchID int) (int, error) {
	executor := r.getExecutor(exec)
	var next int
	if err := executor.QueryRowContext(ctx, `SELECT COALESCE(MAX(game_number), 0) + 1 FROM games WHERE match_id = $1`, matchID).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to compute next game number for match %d: %w", matchID, err)
	}
	return next, nil
}

func (r *postgresGameRepository) UpdateScores(ctx context.Context, exec SQLExecutor, gameID, team1Score, team2Score, winnerID int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE games
		SET team1_score = $1, team2_score = $2, winner_id = $3
		WHERE id = $4`

	result, err := executor.ExecContext(ctx, query, team1Score, team2Score, winnerID, gameID)
	if err != nil {
		return r.handleGameError(err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Delete(ctx context.Context, exec SQLExecutor, matchID, gameID int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM games WHERE id = $1 AND match_id = $2`, gameID, matchID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	executor := r.getExecutor(exec)
	if _, err := executor.ExecContext(ctx, `DELETE FROM games`); err != nil {
		return fmt.Errorf("failed to delete games: %w", err)
	}
	return nil
}

func (r *postgresGameRepository) handleGameError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "games_match_id_fkey":
			return ErrGameMatchInvalid
		case "games_match_number_key":
			return fmt.Errorf("game number conflict: %w", err)
		}
	}
	return err
}
