package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"swingboard-backend/internal/domain"
)

// PostgresTradeRepository stores journal entries in Postgres.
type PostgresTradeRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTradeRepository(pool *pgxpool.Pool) *PostgresTradeRepository {
	return &PostgresTradeRepository{pool: pool}
}

const tradeColumns = `id, coin_id, symbol, is_long, entry_price, stop_loss, take_profit,
	units, entry_time, status, exit_price, exit_time, profit_loss, entry_reason`

func (r *PostgresTradeRepository) CreateEntry(entry *domain.TradeEntry) error {
	if entry == nil {
		return errors.New("nil entry")
	}

	_, err := r.pool.Exec(context.Background(), `
		insert into trade_entries(`+tradeColumns+`)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		entry.ID,
		entry.CoinID,
		entry.Symbol,
		entry.IsLong,
		entry.EntryPrice,
		entry.StopLoss,
		entry.TakeProfit,
		entry.Units,
		entry.EntryTime,
		entry.Status,
		nullableFloat(entry.ExitPrice),
		nullableTime(entry.ExitTime),
		nullableFloat(entry.ProfitLoss),
		entry.EntryReason,
	)
	return err
}

func (r *PostgresTradeRepository) GetEntryByID(id string) (*domain.TradeEntry, error) {
	row := r.pool.QueryRow(context.Background(), `
		select `+tradeColumns+`
		from trade_entries
		where id = $1
	`, id)

	entry, err := scanTradeEntry(row)
	if err != nil {
		return nil, fmt.Errorf("entry with ID %s not found", id)
	}
	return entry, nil
}

func (r *PostgresTradeRepository) GetOpenEntries() []*domain.TradeEntry {
	return r.queryEntries(`
		select ` + tradeColumns + `
		from trade_entries
		where status = 'open'
		order by entry_time desc
	`)
}

func (r *PostgresTradeRepository) GetAllEntries() []*domain.TradeEntry {
	return r.queryEntries(`
		select ` + tradeColumns + `
		from trade_entries
		order by entry_time desc
	`)
}

func (r *PostgresTradeRepository) queryEntries(query string) []*domain.TradeEntry {
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return []*domain.TradeEntry{}
	}
	defer rows.Close()

	entries := make([]*domain.TradeEntry, 0)
	for rows.Next() {
		entry, scanErr := scanTradeEntry(rows)
		if scanErr != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func (r *PostgresTradeRepository) UpdateEntry(entry *domain.TradeEntry) error {
	if entry == nil {
		return errors.New("nil entry")
	}

	tag, err := r.pool.Exec(context.Background(), `
		update trade_entries set
			coin_id=$2,
			symbol=$3,
			is_long=$4,
			entry_price=$5,
			stop_loss=$6,
			take_profit=$7,
			units=$8,
			entry_time=$9,
			status=$10,
			exit_price=$11,
			exit_time=$12,
			profit_loss=$13,
			entry_reason=$14
		where id=$1
	`,
		entry.ID,
		entry.CoinID,
		entry.Symbol,
		entry.IsLong,
		entry.EntryPrice,
		entry.StopLoss,
		entry.TakeProfit,
		entry.Units,
		entry.EntryTime,
		entry.Status,
		nullableFloat(entry.ExitPrice),
		nullableTime(entry.ExitTime),
		nullableFloat(entry.ProfitLoss),
		entry.EntryReason,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry not found")
	}
	return nil
}

func (r *PostgresTradeRepository) DeleteEntry(id string) error {
	tag, err := r.pool.Exec(context.Background(), `delete from trade_entries where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry not found")
	}
	return nil
}

func (r *PostgresTradeRepository) ClearAll() error {
	_, err := r.pool.Exec(context.Background(), `delete from trade_entries`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTradeEntry(row rowScanner) (*domain.TradeEntry, error) {
	var entry domain.TradeEntry
	var exitPrice, profitLoss pgtype.Float8
	var exitTime pgtype.Timestamptz

	err := row.Scan(
		&entry.ID,
		&entry.CoinID,
		&entry.Symbol,
		&entry.IsLong,
		&entry.EntryPrice,
		&entry.StopLoss,
		&entry.TakeProfit,
		&entry.Units,
		&entry.EntryTime,
		&entry.Status,
		&exitPrice,
		&exitTime,
		&profitLoss,
		&entry.EntryReason,
	)
	if err != nil {
		return nil, err
	}

	if exitPrice.Valid {
		v := exitPrice.Float64
		entry.ExitPrice = &v
	}
	if exitTime.Valid {
		t := exitTime.Time
		entry.ExitTime = &t
	}
	if profitLoss.Valid {
		v := profitLoss.Float64
		entry.ProfitLoss = &v
	}
	return &entry, nil
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
