package models

// RankingRow is one team's line in the tournament standings.
// MatchesWon ("vacas") is the primary ranking key, GameDiff the first
// tie-break and PointDiff the second.
type RankingRow struct {
	Position      int    `json:"position"`
	TeamID        int    `json:"team_id"`
	Team          *Team  `json:"team,omitempty"`
	MatchesWon    int    `json:"matches_won"`
	GameDiff      int    `json:"game_diff"`
	PointDiff     int    `json:"point_diff"`
	MatchesPlayed int    `json:"matches_played"`
	MatchesTotal  int    `json:"matches_total"`
	Played        string `json:"played"` // "played/total" display string
}
