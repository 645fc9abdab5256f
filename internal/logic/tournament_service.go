package logic

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Ash20s/sv-ranking-api/internal/models"
)

type tournamentService struct {
	pg     PgPool
	logger *zap.SugaredLogger
}

func NewTournamentService(pg PgPool, logger *zap.Logger) TournamentService {
	return &tournamentService{pg: pg, logger: logger.Sugar()}
}

// mainBoard is the group order of a tournament's main game set. Qualifier
// groups start at 1.
const mainBoard = 0

// GetStandings recomputes the tournament scoreboard from scratch. With
// preview set, completed-but-unpublished games count too (organizer
// view); the public view only sees published games.
func (s *tournamentService) GetStandings(ctx context.Context, tournamentID string, preview bool) (*models.TournamentStandings, error) {
	var (
		teams     []string
		games     []models.Game
		published PublishedSet
		ps        models.PointsSystem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		teams, err = s.loadRoster(gctx, tournamentID, false)
		return err
	})
	g.Go(func() (err error) {
		games, err = s.loadGames(gctx, tournamentID, mainBoard)
		return err
	})
	g.Go(func() (err error) {
		published, err = s.loadPublished(gctx, tournamentID, mainBoard)
		return err
	})
	g.Go(func() (err error) {
		ps, err = s.loadPointsSystem(gctx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load tournament %s: %w", tournamentID, err)
	}

	standings, dropped, err := AggregateStandings(teams, games, published, ps, AggregateOptions{IncludeUnpublished: preview})
	if err != nil {
		return nil, fmt.Errorf("aggregate tournament %s: %w", tournamentID, err)
	}
	for _, d := range dropped {
		s.logger.Warnw("Dropped result for team outside roster",
			"tournament", tournamentID, "game", d.GameNumber, "team", d.TeamID)
	}

	slots := make([]models.GameSlot, len(games))
	for i, game := range games {
		slots[i] = models.GameSlot{
			GameNumber: game.GameNumber,
			Status:     game.Status,
			Published:  published.Contains(game.GameNumber),
			Counted:    IsCounted(game, published) || (preview && game.Status == models.GameCompleted),
		}
	}

	return &models.TournamentStandings{
		TournamentID: tournamentID,
		Standings:    standings,
		Games:        slots,
		Preview:      preview,
	}, nil
}

// PublishScores adds game numbers to the tournament's published set.
// Re-publishing an already published game is a no-op.
func (s *tournamentService) PublishScores(ctx context.Context, tournamentID string, gameNumbers []int) error {
	tx, err := s.pg.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin publish: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, n := range gameNumbers {
		if _, err := tx.Exec(ctx, `
			INSERT INTO published_games (tournament_id, group_order, game_number)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, tournamentID, mainBoard, n); err != nil {
			return fmt.Errorf("publish game %d: %w", n, err)
		}
	}
	return tx.Commit(ctx)
}

// ResetScores clears the tournament's published set and all entered
// results. The next standings read yields an empty scoreboard.
func (s *tournamentService) ResetScores(ctx context.Context, tournamentID string) error {
	tx, err := s.pg.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"DELETE FROM published_games WHERE tournament_id = $1", tournamentID); err != nil {
		return fmt.Errorf("clear published set: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM game_results
		WHERE game_id IN (SELECT id FROM games WHERE tournament_id = $1)
	`, tournamentID); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE games SET status = 'scheduled' WHERE tournament_id = $1
	`, tournamentID); err != nil {
		return fmt.Errorf("reset game status: %w", err)
	}
	return tx.Commit(ctx)
}

// SaveGameResults replaces the result set of one game and marks it
// completed. The game must belong to the given tournament and group.
func (s *tournamentService) SaveGameResults(ctx context.Context, tournamentID string, groupOrder int, gameID string, results []models.GameResultInput) error {
	tx, err := s.pg.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save results: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM games
			WHERE id = $1 AND tournament_id = $2 AND group_order = $3
		)
	`, gameID, tournamentID, groupOrder).Scan(&exists); err != nil {
		return fmt.Errorf("look up game %s: %w", gameID, err)
	}
	if !exists {
		return fmt.Errorf("game %s not found in tournament %s group %d", gameID, tournamentID, groupOrder)
	}

	if _, err := tx.Exec(ctx,
		"DELETE FROM game_results WHERE game_id = $1", gameID); err != nil {
		return fmt.Errorf("clear old results: %w", err)
	}
	for _, r := range results {
		if _, err := tx.Exec(ctx, `
			INSERT INTO game_results (game_id, team_id, placement, kills)
			VALUES ($1, $2, $3, $4)
		`, gameID, r.TeamID, r.Placement, r.Kills); err != nil {
			return fmt.Errorf("insert result for team %s: %w", r.TeamID, err)
		}
	}
	if _, err := tx.Exec(ctx,
		"UPDATE games SET status = 'completed' WHERE id = $1", gameID); err != nil {
		return fmt.Errorf("complete game %s: %w", gameID, err)
	}
	return tx.Commit(ctx)
}

// GenerateGroups partitions the checked-in roster into qualifier groups
// and persists them, replacing any previous grouping.
func (s *tournamentService) GenerateGroups(ctx context.Context, tournamentID string, numberOfGroups int) ([]models.QualifierGroup, error) {
	teams, err := s.loadRoster(ctx, tournamentID, true)
	if err != nil {
		return nil, fmt.Errorf("load checked-in roster: %w", err)
	}

	var qualifiersPerGroup int
	if err := s.pg.QueryRow(ctx,
		"SELECT qualifiers_per_group FROM tournaments WHERE id = $1",
		tournamentID).Scan(&qualifiersPerGroup); err != nil {
		return nil, fmt.Errorf("load tournament %s: %w", tournamentID, err)
	}

	partition, err := GenerateGroups(teams, numberOfGroups)
	if err != nil {
		return nil, err
	}

	tx, err := s.pg.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin generate groups: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"DELETE FROM group_teams WHERE tournament_id = $1", tournamentID); err != nil {
		return nil, fmt.Errorf("clear group teams: %w", err)
	}
	if _, err := tx.Exec(ctx,
		"DELETE FROM qualifier_groups WHERE tournament_id = $1", tournamentID); err != nil {
		return nil, fmt.Errorf("clear groups: %w", err)
	}

	groups := make([]models.QualifierGroup, len(partition))
	for i, groupTeams := range partition {
		group := models.QualifierGroup{
			Name:               fmt.Sprintf("Group %d", i+1),
			GroupOrder:         i + 1,
			QualifiersPerGroup: qualifiersPerGroup,
			Teams:              groupTeams,
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO qualifier_groups (tournament_id, group_order, name, qualifiers_per_group)
			VALUES ($1, $2, $3, $4)
		`, tournamentID, group.GroupOrder, group.Name, group.QualifiersPerGroup); err != nil {
			return nil, fmt.Errorf("insert group %s: %w", group.Name, err)
		}
		for pos, teamID := range groupTeams {
			if _, err := tx.Exec(ctx, `
				INSERT INTO group_teams (tournament_id, group_order, team_id, position, qualified)
				VALUES ($1, $2, $3, $4, false)
			`, tournamentID, group.GroupOrder, teamID, pos); err != nil {
				return nil, fmt.Errorf("insert team %s into %s: %w", teamID, group.Name, err)
			}
		}
		groups[i] = group
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit groups: %w", err)
	}
	return groups, nil
}

// ProcessQualifications ranks one qualifier group, persists the
// qualified flags and returns the annotated standings.
func (s *tournamentService) ProcessQualifications(ctx context.Context, tournamentID string, groupOrder int) ([]models.Standing, error) {
	group, err := s.loadGroup(ctx, tournamentID, groupOrder)
	if err != nil {
		return nil, err
	}

	var (
		published PublishedSet
		ps        models.PointsSystem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		group.Games, err = s.loadGames(gctx, tournamentID, groupOrder)
		return err
	})
	g.Go(func() (err error) {
		published, err = s.loadPublished(gctx, tournamentID, groupOrder)
		return err
	})
	g.Go(func() (err error) {
		ps, err = s.loadPointsSystem(gctx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load group %d: %w", groupOrder, err)
	}

	standings, dropped, err := PromoteQualifiers(*group, group.QualifiersPerGroup, published, ps)
	if err != nil {
		return nil, err
	}
	for _, d := range dropped {
		s.logger.Warnw("Dropped result for team outside group roster",
			"tournament", tournamentID, "group", groupOrder, "game", d.GameNumber, "team", d.TeamID)
	}

	tx, err := s.pg.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin qualification update: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, st := range standings {
		if _, err := tx.Exec(ctx, `
			UPDATE group_teams SET qualified = $1
			WHERE tournament_id = $2 AND group_order = $3 AND team_id = $4
		`, st.Qualified, tournamentID, groupOrder, st.TeamID); err != nil {
			return nil, fmt.Errorf("mark team %s: %w", st.TeamID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit qualification: %w", err)
	}
	return standings, nil
}

func (s *tournamentService) loadRoster(ctx context.Context, tournamentID string, checkedInOnly bool) ([]string, error) {
	query := `
		SELECT team_id FROM tournament_teams
		WHERE tournament_id = $1
		ORDER BY registered_at, team_id
	`
	if checkedInOnly {
		query = `
			SELECT team_id FROM tournament_teams
			WHERE tournament_id = $1 AND checked_in = true
			ORDER BY registered_at, team_id
		`
	}

	rows, err := s.pg.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("roster query: %w", err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var teamID string
		if err := rows.Scan(&teamID); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		teams = append(teams, teamID)
	}
	return teams, rows.Err()
}

func (s *tournamentService) loadGames(ctx context.Context, tournamentID string, groupOrder int) ([]models.Game, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id, game_number, status FROM games
		WHERE tournament_id = $1 AND group_order = $2
		ORDER BY game_number
	`, tournamentID, groupOrder)
	if err != nil {
		return nil, fmt.Errorf("games query: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	index := make(map[string]int)
	for rows.Next() {
		var game models.Game
		if err := rows.Scan(&game.ID, &game.GameNumber, &game.Status); err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		index[game.ID] = len(games)
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	resultRows, err := s.pg.Query(ctx, `
		SELECT r.game_id, r.team_id, r.placement, r.kills
		FROM game_results r
		JOIN games g ON g.id = r.game_id
		WHERE g.tournament_id = $1 AND g.group_order = $2
	`, tournamentID, groupOrder)
	if err != nil {
		return nil, fmt.Errorf("results query: %w", err)
	}
	defer resultRows.Close()

	for resultRows.Next() {
		var gameID string
		var result models.GameResult
		if err := resultRows.Scan(&gameID, &result.TeamID, &result.Placement, &result.Kills); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		if i, ok := index[gameID]; ok {
			games[i].Results = append(games[i].Results, result)
		}
	}
	return games, resultRows.Err()
}

func (s *tournamentService) loadPublished(ctx context.Context, tournamentID string, groupOrder int) (PublishedSet, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT game_number FROM published_games
		WHERE tournament_id = $1 AND group_order = $2
	`, tournamentID, groupOrder)
	if err != nil {
		return nil, fmt.Errorf("published set query: %w", err)
	}
	defer rows.Close()

	published := NewPublishedSet()
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan published row: %w", err)
		}
		published[n] = struct{}{}
	}
	return published, rows.Err()
}

func (s *tournamentService) loadPointsSystem(ctx context.Context, tournamentID string) (models.PointsSystem, error) {
	ps := models.PointsSystem{PlacementPoints: make(map[int]int)}

	if err := s.pg.QueryRow(ctx,
		"SELECT kill_points FROM tournaments WHERE id = $1",
		tournamentID).Scan(&ps.KillPoints); err != nil {
		return ps, fmt.Errorf("kill points query: %w", err)
	}

	rows, err := s.pg.Query(ctx, `
		SELECT placement, points FROM points_placements
		WHERE tournament_id = $1
	`, tournamentID)
	if err != nil {
		return ps, fmt.Errorf("placement points query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var placement, points int
		if err := rows.Scan(&placement, &points); err != nil {
			return ps, fmt.Errorf("scan placement points row: %w", err)
		}
		ps.PlacementPoints[placement] = points
	}
	return ps, rows.Err()
}

func (s *tournamentService) loadGroup(ctx context.Context, tournamentID string, groupOrder int) (*models.QualifierGroup, error) {
	group := &models.QualifierGroup{GroupOrder: groupOrder}
	if err := s.pg.QueryRow(ctx, `
		SELECT name, qualifiers_per_group FROM qualifier_groups
		WHERE tournament_id = $1 AND group_order = $2
	`, tournamentID, groupOrder).Scan(&group.Name, &group.QualifiersPerGroup); err != nil {
		return nil, fmt.Errorf("group %d query: %w", groupOrder, err)
	}

	rows, err := s.pg.Query(ctx, `
		SELECT team_id FROM group_teams
		WHERE tournament_id = $1 AND group_order = $2
		ORDER BY position
	`, tournamentID, groupOrder)
	if err != nil {
		return nil, fmt.Errorf("group teams query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teamID string
		if err := rows.Scan(&teamID); err != nil {
			return nil, fmt.Errorf("scan group team row: %w", err)
		}
		group.Teams = append(group.Teams, teamID)
	}
	return group, rows.Err()
}
