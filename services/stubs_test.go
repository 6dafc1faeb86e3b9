package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"torneo-mus/models"
	"torneo-mus/repositories"
	"torneo-mus/storage"
)

// stubTransactor runs the function directly, outside any real
// transaction. Stub repositories below take exec as nil.
type stubTransactor struct {
	calls int
	err   error
}

func (t *stubTransactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	t.calls++
	if t.err != nil {
		return t.err
	}
	return fn(nil)
}

type stubTeamRepo struct {
	teams   []*models.Team
	nextID  int
	listErr error
}

func (r *stubTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	for _, existing := range r.teams {
		if existing.Name == team.Name {
			return repositories.ErrTeamNameTaken
		}
	}
	r.nextID++
	team.ID = r.nextID
	team.CreatedAt = time.Now()
	stored := *team
	r.teams = append(r.teams, &stored)
	return nil
}

func (r *stubTeamRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Team, error) {
	for _, t := range r.teams {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *stubTeamRepo) List(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Team, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*models.Team, len(r.teams))
	for i, t := range r.teams {
		copied := *t
		out[i] = &copied
	}
	return out, nil
}

func (r *stubTeamRepo) Count(ctx context.Context, exec repositories.SQLExecutor) (int, error) {
	return len(r.teams), nil
}

func (r *stubTeamRepo) UpdateLogoKey(ctx context.Context, exec repositories.SQLExecutor, id int, logoKey *string) error {
	for _, t := range r.teams {
		if t.ID == id {
			t.LogoKey = logoKey
			return nil
		}
	}
	return repositories.ErrTeamNotFound
}

// addTeam seeds a team directly, bypassing Create.
func (r *stubTeamRepo) addTeam(name string) *models.Team {
	r.nextID++
	team := &models.Team{
		ID:      r.nextID,
		Name:    name,
		Player1: name + " P1",
		Player2: name + " P2",
	}
	r.teams = append(r.teams, team)
	return team
}

type stubMatchRepo struct {
	matches       []*models.Match
	nextID        int
	deleteAllN    int
	updateResultN int
}

func (r *stubMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	r.nextID++
	match.ID = r.nextID
	match.CreatedAt = time.Now()
	stored := *match
	r.matches = append(r.matches, &stored)
	return nil
}

func (r *stubMatchRepo) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	m := r.find(id)
	if m == nil {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *stubMatchRepo) List(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Match, error) {
	out := make([]*models.Match, len(r.matches))
	for i, m := range r.matches {
		copied := *m
		out[i] = &copied
	}
	return out, nil
}

func (r *stubMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, id int, team1GamesWon, team2GamesWon int, status models.MatchStatus, winnerID *int, completedAt *time.Time) error {
	m := r.find(id)
	if m == nil {
		return repositories.ErrMatchNotFound
	}
	r.updateResultN++
	m.Team1GamesWon = team1GamesWon
	m.Team2GamesWon = team2GamesWon
	m.Status = status
	m.WinnerID = winnerID
	m.CompletedAt = completedAt
	return nil
}

func (r *stubMatchRepo) DeleteAll(ctx context.Context, exec repositories.SQLExecutor) error {
	r.deleteAllN++
	r.matches = nil
	return nil
}

func (r *stubMatchRepo) Count(ctx context.Context, exec repositories.SQLExecutor) (int, error) {
	return len(r.matches), nil
}

func (r *stubMatchRepo) CountByStatus(ctx context.Context, exec repositories.SQLExecutor, status models.MatchStatus) (int, error) {
	n := 0
	for _, m := range r.matches {
		if m.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubMatchRepo) find(id int) *models.Match {
	for _, m := range r.matches {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// addMatch seeds a pending match directly, bypassing Create.
func (r *stubMatchRepo) addMatch(team1ID, team2ID int) *models.Match {
	r.nextID++
	match := &models.Match{
		ID:      r.nextID,
		Team1ID: team1ID,
		Team2ID: team2ID,
		Status:  models.MatchStatusPending,
	}
	r.matches = append(r.matches, match)
	return match
}

type stubGameRepo struct {
	games      []*models.Game
	nextID     int
	deleteAllN int
}

func (r *stubGameRepo) Create(ctx context.Context, exec repositories.SQLExecutor, game *models.Game) error {
	// Mirrors the schema's UNIQUE (match_id, game_number).
	for _, g := range r.games {
		if g.MatchID == game.MatchID && g.GameNumber == game.GameNumber {
			return fmt.Errorf("game number conflict: match %d already has game %d", game.MatchID, game.GameNumber)
		}
	}
	r.nextID++
	game.ID = r.nextID
	game.CreatedAt = time.Now()
	stored := *game
	r.games = append(r.games, &stored)
	return nil
}

func (r *stubGameRepo) GetByMatchAndID(ctx context.Context, exec repositories.SQLExecutor, matchID, gameID int) (*models.Game, error) {
	for _, g := range r.games {
		if g.ID == gameID && g.MatchID == matchID {
			copied := *g
			return &copied, nil
		}
	}
	return nil, repositories.ErrGameNotFound
}

func (r *stubGameRepo) ListByMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int) ([]*models.Game, error) {
	var out []*models.Game
	for _, g := range r.games {
		if g.MatchID == matchID {
			copied := *g
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameNumber < out[j].GameNumber })
	return out, nil
}

func (r *stubGameRepo) ListAll(ctx context.Context, exec repositories.SQLExecutor) ([]*models.Game, error) {
	out := make([]*models.Game, len(r.games))
	for i, g := range r.games {
		copied := *g
		out[i] = &copied
	}
	return out, nil
}

func (r *stubGameRepo) NextGameNumber(ctx context.Context, exec repositories.SQLExecutor, matchID int) (int, error) {
	max := 0
	for _, g := range r.games {
		if g.MatchID == matchID && g.GameNumber > max {
			max = g.GameNumber
		}
	}
	return max + 1, nil
}

func (r *stubGameRepo) UpdateScores(ctx context.Context, exec repositories.SQLExecutor, gameID, team1Score, team2Score, winnerID int) error {
	for _, g := range r.games {
		if g.ID == gameID {
			g.Team1Score = team1Score
			g.Team2Score = team2Score
			g.WinnerID = winnerID
			return nil
		}
	}
	return repositories.ErrGameNotFound
}

func (r *stubGameRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, matchID, gameID int) error {
	for i, g := range r.games {
		if g.ID == gameID && g.MatchID == matchID {
			r.games = append(r.games[:i], r.games[i+1:]...)
			return nil
		}
	}
	return repositories.ErrGameNotFound
}

func (r *stubGameRepo) DeleteAll(ctx context.Context, exec repositories.SQLExecutor) error {
	r.deleteAllN++
	r.games = nil
	return nil
}

type stubNotifier struct {
	matchUpdates      []*models.Match
	scheduleGenerated []int
}

func (n *stubNotifier) NotifyMatchUpdated(match *models.Match) {
	n.matchUpdates = append(n.matchUpdates, match)
}

func (n *stubNotifier) NotifyScheduleGenerated(matchCount int) {
	n.scheduleGenerated = append(n.scheduleGenerated, matchCount)
}

type stubUploader struct {
	uploads []string
	deletes []string
	baseURL string
}

func (u *stubUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	u.uploads = append(u.uploads, key)
	return &storage.UploadResult{Key: key, Location: u.baseURL + "/" + key}, nil
}

func (u *stubUploader) Delete(ctx context.Context, key string) error {
	u.deletes = append(u.deletes, key)
	return nil
}

func (u *stubUploader) GetPublicURL(key string) string {
	return fmt.Sprintf("%s/%s", u.baseURL, key)
}
