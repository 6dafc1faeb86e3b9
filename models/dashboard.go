package models

type DashboardStats struct {
	TeamsTotal         int     `json:"teams_total"`
	MatchesTotal       int     `json:"matches_total"`
	CompletedMatches   int     `json:"completed_matches"`
	ProgressPercentage float64 `json:"progress_percentage"`
	AppURL             string  `json:"app_url"`
	QRCodeBase64       string  `json:"qr_code,omitempty"`
}
