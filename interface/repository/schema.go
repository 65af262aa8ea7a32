package repository

import (
	"github.com/behrang/sqlbatch"
)

const sqlSchema = `
	create table if not exists tokens (
		symbol      text primary key,
		name        text not null,
		creator     text not null,
		treasury    text not null,
		launch_time timestamptz not null
	);

	create table if not exists treasuries (
		symbol               text primary key references tokens (symbol),
		version              bigint not null,
		token_balance        numeric(39, 0) not null,
		currency_balance     numeric(39, 0) not null,
		virtual_currency     numeric(39, 0) not null,
		fee_pool             numeric(39, 0) not null,
		total_swap_fees_sent numeric(39, 0) not null,
		last_withdraw_amount numeric(39, 0) not null,
		majority_holder      text,
		update_time          timestamptz not null
	);

	create table if not exists locked_balances (
		symbol text not null references tokens (symbol),
		holder text not null,
		amount numeric(39, 0) not null,
		primary key (symbol, holder)
	);

	create table if not exists trades (
		id              uuid primary key,
		symbol          text not null references tokens (symbol),
		trader          text not null,
		direction       text not null,
		token_amount    numeric(39, 0) not null,
		currency_amount numeric(39, 0) not null,
		swap_fee        numeric(39, 0) not null,
		majority_fee    numeric(39, 0) not null,
		price           numeric not null,
		time            timestamptz not null
	);
	create index if not exists trades_symbol_time on trades (symbol, time, id);

	create table if not exists transfers (
		id           bigserial primary key,
		symbol       text not null references tokens (symbol),
		version      bigint not null,
		op           text not null,
		seq          int not null,
		asset        text not null,
		amount       numeric(39, 0) not null,
		from_account text not null,
		to_account   text not null,
		create_time  timestamptz not null
	);

	create table if not exists candles (
		symbol           text not null references tokens (symbol),
		interval_seconds bigint not null,
		start            timestamptz not null,
		open             numeric not null,
		high             numeric not null,
		low              numeric not null,
		close            numeric not null,
		token_volume     numeric(39, 0) not null,
		currency_volume  numeric(39, 0) not null,
		trades           bigint not null,
		primary key (symbol, interval_seconds, start)
	);

	create table if not exists reward_snapshots (
		symbol               text not null references tokens (symbol),
		fee_pool             numeric(39, 0) not null,
		total_swap_fees_sent numeric(39, 0) not null,
		majority_holder      text,
		holder_locked        numeric(39, 0) not null,
		total_locked         numeric(39, 0) not null,
		holder_share         numeric not null,
		time                 timestamptz not null
	);

	create table if not exists memos (
		key  text primary key,
		memo jsonb not null
	);
`

type SchemaRepository struct {
	batchHandler BatchHandler
}

func NewSchemaRepository(db BatchHandler) *SchemaRepository {
	return &SchemaRepository{batchHandler: db}
}

// Migrate creates every table that does not exist yet.
func (repo *SchemaRepository) Migrate() error {
	_, err := repo.batchHandler.Batch(&BatchOptionNormal, []sqlbatch.Command{
		{
			Query: sqlSchema,
			Args:  []interface{}{},
		},
	})
	return err
}
