package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the minimal tables needed by this app.
// This keeps setup simple (no external migration tool), but still gives persistence.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists trade_entries (
			id text primary key,
			coin_id text not null,
			symbol text not null,
			is_long boolean not null default true,
			entry_price double precision not null,
			stop_loss double precision not null,
			take_profit double precision not null,
			units double precision not null default 0,
			entry_time timestamptz not null,
			status text not null,
			exit_price double precision null,
			exit_time timestamptz null,
			profit_loss double precision null,
			entry_reason text not null default ''
		);`,
		`create index if not exists trade_entries_status_idx on trade_entries(status);`,
		`create index if not exists trade_entries_coin_entry_time_idx on trade_entries(coin_id, entry_time desc);`,
		`create table if not exists price_history_cache (
			coin_id text primary key,
			data jsonb not null,
			captured_at timestamptz not null,
			days int not null,
			is_real_data boolean not null default true,
			data_quality text not null default 'excellent'
		);`,
		`create index if not exists price_history_cache_captured_at_idx on price_history_cache(captured_at);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
