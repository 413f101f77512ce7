package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gametrack-backend/internal/locations"
	"gametrack-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// gameColumns is the shared column list for every stage table. Stage
// table names come from the fixed locations.Table map, never from
// request input, so interpolating them into SQL is safe.
const gameColumns = `location, game_key, gname, dist_id, gtype, gcost, siteno, inv_num,
	ticket_price, ticket_count, tickets_sold, current_tickets,
	winner_count, winners_sold, current_winners,
	ideal_gross, ideal_prize, ideal_net, purchase_date, cash_hand,
	date_opened, date_closed, box_number`

const gamePlaceholders = `$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
	$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23`

const gameUpsertSet = `gname = EXCLUDED.gname, dist_id = EXCLUDED.dist_id,
	gtype = EXCLUDED.gtype, gcost = EXCLUDED.gcost, siteno = EXCLUDED.siteno,
	inv_num = EXCLUDED.inv_num, ticket_price = EXCLUDED.ticket_price,
	ticket_count = EXCLUDED.ticket_count, tickets_sold = EXCLUDED.tickets_sold,
	current_tickets = EXCLUDED.current_tickets, winner_count = EXCLUDED.winner_count,
	winners_sold = EXCLUDED.winners_sold, current_winners = EXCLUDED.current_winners,
	ideal_gross = EXCLUDED.ideal_gross, ideal_prize = EXCLUDED.ideal_prize,
	ideal_net = EXCLUDED.ideal_net, purchase_date = EXCLUDED.purchase_date,
	cash_hand = EXCLUDED.cash_hand, date_opened = EXCLUDED.date_opened,
	date_closed = EXCLUDED.date_closed, box_number = EXCLUDED.box_number`

type GameRepository struct {
	DB *pgxpool.Pool
}

func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{DB: db}
}

func gameArgs(g *models.GameRecord) []interface{} {
	return []interface{}{
		g.Location, g.Key, g.Name, g.DistID, g.Type, g.Cost, g.SiteNo, g.InvNum,
		g.TicketPrice, g.TicketCount, g.TicketsSold, g.CurrentTickets,
		g.WinnerCount, g.WinnersSold, g.CurrentWinners,
		g.IdealGross, g.IdealPrize, g.IdealNet, g.PurchaseDate, g.CashHand,
		g.DateOpened, g.DateClosed, g.BoxNumber,
	}
}

func scanGame(row pgx.Row) (*models.GameRecord, error) {
	var g models.GameRecord
	err := row.Scan(
		&g.Location, &g.Key, &g.Name, &g.DistID, &g.Type, &g.Cost, &g.SiteNo, &g.InvNum,
		&g.TicketPrice, &g.TicketCount, &g.TicketsSold, &g.CurrentTickets,
		&g.WinnerCount, &g.WinnersSold, &g.CurrentWinners,
		&g.IdealGross, &g.IdealPrize, &g.IdealNet, &g.PurchaseDate, &g.CashHand,
		&g.DateOpened, &g.DateClosed, &g.BoxNumber,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// FindByKey returns the game at (location, key) in the given stage, or
// nil when no row exists.
func (r *GameRepository) FindByKey(ctx context.Context, stage locations.Stage, location, key string) (*models.GameRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE location = $1 AND game_key = $2`,
		gameColumns, locations.Table(stage))

	g, err := scanGame(r.DB.QueryRow(ctx, query, location, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return g, err
}

// FindAnyLocation looks a key up across all locations within a stage.
func (r *GameRepository) FindAnyLocation(ctx context.Context, stage locations.Stage, key string) (*models.GameRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE game_key = $1 ORDER BY location LIMIT 1`,
		gameColumns, locations.Table(stage))

	g, err := scanGame(r.DB.QueryRow(ctx, query, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return g, err
}

// upsertGameQuery builds the insert-or-replace statement for a stage
// table; deleteGameQuery builds the matching delete. Every write path
// (move, bulk ingest, pickup archive) goes through these two.
func upsertGameQuery(stage locations.Stage) string {
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)
		ON CONFLICT (location, game_key) DO UPDATE SET %s`,
		locations.Table(stage), gameColumns, gamePlaceholders, gameUpsertSet)
}

func deleteGameQuery(stage locations.Stage) string {
	return fmt.Sprintf(`DELETE FROM %s WHERE location = $1 AND game_key = $2`, locations.Table(stage))
}

// Move transfers a row between two stage tables in one transaction.
// fromLocation names the row being removed; g carries the location it
// lands under, which differs only for emergency relocations. The
// insert upserts, so replaying a move after a partial failure is
// harmless.
func (r *GameRepository) Move(ctx context.Context, from, to locations.Stage, fromLocation string, g *models.GameRecord) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, upsertGameQuery(to), gameArgs(g)...); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, deleteGameQuery(from), fromLocation, g.Key); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// BulkUpsert writes a batch of rows into a stage table atomically.
func (r *GameRepository) BulkUpsert(ctx context.Context, stage locations.Stage, games []*models.GameRecord) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := upsertGameQuery(stage)
	for _, g := range games {
		if _, err := tx.Exec(ctx, query, gameArgs(g)...); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListStage returns every row for one location in a stage, in a
// stable key order.
func (r *GameRepository) ListStage(ctx context.Context, stage locations.Stage, location string) ([]models.GameRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE location = $1 ORDER BY game_key`,
		gameColumns, locations.Table(stage))

	rows, err := r.DB.Query(ctx, query, location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

func (r *GameRepository) CountStage(ctx context.Context, stage locations.Stage, location string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE location = $1`, locations.Table(stage))

	var count int
	err := r.DB.QueryRow(ctx, query, location).Scan(&count)
	return count, err
}

// ListBoxes returns the open games of a location that occupy a box,
// ordered by box number.
func (r *GameRepository) ListBoxes(ctx context.Context, location string) ([]models.GameRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE location = $1 AND box_number IS NOT NULL ORDER BY box_number`,
		gameColumns, locations.Table(locations.StageOpen))

	rows, err := r.DB.Query(ctx, query, location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

// SetCounters writes the sale and winner counters of an open game.
func (r *GameRepository) SetCounters(ctx context.Context, location, key string, ticketsSold, currentTickets, winnersSold, currentWinners int, cashHand float64) error {
	query := fmt.Sprintf(`UPDATE %s SET tickets_sold = $3, current_tickets = $4,
		winners_sold = $5, current_winners = $6, cash_hand = $7
		WHERE location = $1 AND game_key = $2`, locations.Table(locations.StageOpen))

	_, err := r.DB.Exec(ctx, query, location, key, ticketsSold, currentTickets, winnersSold, currentWinners, cashHand)
	return err
}

// ConfirmPickup moves one closed game into transit: the full row is
// archived to the final table, the cash side goes to transportation,
// and the closed row is removed, all in one transaction. Returns
// false when the closed row is gone.
func (r *GameRepository) ConfirmPickup(ctx context.Context, location, key, picker string, at time.Time) (bool, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	sel := fmt.Sprintf(`SELECT %s FROM %s WHERE location = $1 AND game_key = $2 FOR UPDATE`,
		gameColumns, locations.Table(locations.StageClosed))
	g, err := scanGame(tx.QueryRow(ctx, sel, location, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := tx.Exec(ctx, upsertGameQuery(locations.StageFinalClosed), gameArgs(g)...); err != nil {
		return false, err
	}

	transit := `INSERT INTO transportation (game_key, gname, cash_hand, pick_up, picked_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_key) DO UPDATE SET gname = EXCLUDED.gname,
			cash_hand = EXCLUDED.cash_hand, pick_up = EXCLUDED.pick_up,
			picked_at = EXCLUDED.picked_at`
	if _, err := tx.Exec(ctx, transit, g.Key, g.Name, g.CashHand, picker, at); err != nil {
		return false, err
	}

	if _, err := tx.Exec(ctx, deleteGameQuery(locations.StageClosed), location, key); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// ListFinalClosed returns the full archive, newest closed first.
func (r *GameRepository) ListFinalClosed(ctx context.Context) ([]models.GameRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY date_closed DESC NULLS LAST, game_key`,
		gameColumns, locations.Table(locations.StageFinalClosed))

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}
