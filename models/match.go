package models

import "time"

type MatchStatus string

const (
	MatchStatusPending    MatchStatus = "pending"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

// Match is one pairing of two teams, decided by best-of-5 games.
// Team1GamesWon/Team2GamesWon are the canonical counters; when results
// are entered game by game they are re-derived from the game list.
type Match struct {
	ID            int         `json:"id" db:"id"`
	Team1ID       int         `json:"team1_id" db:"team1_id"`
	Team2ID       int         `json:"team2_id" db:"team2_id"`
	Status        MatchStatus `json:"status" db:"status"`
	WinnerID      *int        `json:"winner_id,omitempty" db:"winner_id"`
	Team1GamesWon int         `json:"team1_games_won" db:"team1_games_won"`
	Team2GamesWon int         `json:"team2_games_won" db:"team2_games_won"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty" db:"completed_at"`

	Team1 *Team  `json:"team1,omitempty" db:"-"`
	Team2 *Team  `json:"team2,omitempty" db:"-"`
	Games []Game `json:"games,omitempty" db:"-"`
}
