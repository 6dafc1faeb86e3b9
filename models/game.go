package models

import "time"

// Game is one hand within a match, won by reaching 40 points.
type Game struct {
	ID         int       `json:"id" db:"id"`
	MatchID    int       `json:"match_id" db:"match_id"`
	GameNumber int       `json:"game_number" db:"game_number"`
	Team1Score int       `json:"team1_score" db:"team1_score"`
	Team2Score int       `json:"team2_score" db:"team2_score"`
	WinnerID   int       `json:"winner_id" db:"winner_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
