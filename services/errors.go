package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	// Not found
	ErrTeamNotFound  = errors.New("team not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrGameNotFound  = errors.New("game not found")

	// Validation and business rules
	ErrTeamNameRequired    = errors.New("team name is required")
	ErrPlayerNamesRequired = errors.New("both player names are required")
	ErrNotEnoughTeams      = errors.New("need at least 2 teams")
	ErrNegativeScore       = errors.New("scores cannot be negative")
	ErrGameScoreNotForty   = errors.New("one team must reach 40 points")
	ErrGameBothForty       = errors.New("both teams cannot reach 40 points")
	ErrResultTied          = errors.New("a match cannot end in a tie")
	ErrResultNotBestOfFive = errors.New("winner must have exactly 3 games won and loser between 0 and 2")
	ErrLogoUnsupportedType = errors.New("logo must be a png, jpeg or webp image")
	ErrLogoUploadsDisabled = errors.New("logo uploads are not configured")

	// Conflicts
	ErrTeamNameConflict = errors.New("team name is already in use")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid admin password")
)
