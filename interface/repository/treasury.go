package repository

import (
	"database/sql"
	"fmt"
	"time"

	"treasury/domain"
	"treasury/domain/exchange"

	"github.com/behrang/sqlbatch"
)

var (
	ErrorTreasuryNotFound = fmt.Errorf("treasury not found")
)

const (
	sqlTreasuryInsert = `
	insert into treasuries (
			symbol, version, token_balance, currency_balance, virtual_currency, fee_pool,
			total_swap_fees_sent, last_withdraw_amount, majority_holder, update_time
		)
		values (
			$1, 1, $2, $3, $4, $5, $6, $7, $8, now()
		)
`

	sqlTreasuryFind = `
	select
		version, token_balance, currency_balance, virtual_currency, fee_pool,
		total_swap_fees_sent, last_withdraw_amount, majority_holder
	from treasuries
	where symbol = $1
`

	sqlTreasuryVersion = `
	select
		version
	from treasuries
	where symbol = $1
`

	sqlTreasuryUpdate = `
	update treasuries
		set version = version + 1,
			token_balance = $3,
			currency_balance = $4,
			fee_pool = $5,
			total_swap_fees_sent = $6,
			last_withdraw_amount = $7,
			majority_holder = $8,
			update_time = now()
	where symbol = $1 and version = $2
`

	sqlLockedFindAll = `
	select
		holder, amount
	from locked_balances
	where symbol = $1
`

	sqlLockedUpsert = `
	insert into locked_balances as c (
			symbol, holder, amount
		)
		values (
			$1, $2, $3
		)
	on conflict (symbol, holder) do
		update set
			amount = $3
`

	sqlTradeInsert = `
	insert into trades (
			id, symbol, trader, direction, token_amount, currency_amount, swap_fee, majority_fee, price, time
		)
		values (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
`

	sqlTransferInsert = `
	insert into transfers (
			symbol, version, op, seq, asset, amount, from_account, to_account, create_time
		)
		values (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
`
)

// Commit is everything one engine operation changes. It is written in a single transaction.
type Commit struct {
	Symbol string
	// Version is the version the operation was applied to; the commit fails if the stored
	// treasury has moved on.
	Version int64
	State   *exchange.State
	// Holders lists the holders whose locked balance changed.
	Holders []exchange.AccountID
	Receipt *exchange.Receipt
	Trade   *domain.TradeRecord
	Time    time.Time
}

type lockedRow struct {
	holder exchange.AccountID
	amount exchange.Amount
}

type treasuryRow struct {
	version int64
	state   exchange.State
}

type TreasuryRepository struct {
	batchHandler BatchHandler
}

func NewTreasuryRepository(db BatchHandler) *TreasuryRepository {
	return &TreasuryRepository{batchHandler: db}
}

func readAllTreasuries(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	r := treasuryRow{}
	var holder sql.NullString
	s := &r.state
	err := scan(
		&r.version, &s.TokenBalance, &s.CurrencyBalance, &s.VirtualCurrencyOffset, &s.FeePool,
		&s.TotalSwapFeesSent, &s.LastWithdrawAmount, &holder,
	)
	if err == nil && holder.Valid {
		s.MajorityHolder = exchange.AccountID(holder.String)
	}
	list := memo.([]treasuryRow)
	list = append(list, r)
	return list, err
}

func readAllLocked(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	r := lockedRow{}
	err := scan(
		&r.holder, &r.amount,
	)
	list := memo.([]lockedRow)
	list = append(list, r)
	return list, err
}

func readAllVersions(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	var version int64
	err := scan(&version)
	list := memo.([]int64)
	list = append(list, version)
	return list, err
}

func nullableAccount(id exchange.AccountID) sql.NullString {
	return sql.NullString{String: string(id), Valid: id != ""}
}

// Create stores a newly launched token together with the initial state of its treasury.
func (repo *TreasuryRepository) Create(token domain.Token, state *exchange.State) error {
	s := state.Clone()
	_, err := repo.batchHandler.Batch(&BatchOptionSerializable, []sqlbatch.Command{
		{
			Query: sqlTokenInsert,
			Args: []interface{}{
				token.Symbol, token.Name, token.Creator, token.Treasury, token.LaunchTime,
			},
			Affect: 1,
		},
		{
			Query: sqlTreasuryInsert,
			Args: []interface{}{
				token.Symbol, &s.TokenBalance, &s.CurrencyBalance, &s.VirtualCurrencyOffset, &s.FeePool,
				&s.TotalSwapFeesSent, &s.LastWithdrawAmount, nullableAccount(s.MajorityHolder),
			},
			Affect: 1,
		},
	})
	return err
}

// Load reads the treasury of symbol and its version. It returns ErrorTreasuryNotFound if the
// token was never launched.
func (repo *TreasuryRepository) Load(symbol string) (*exchange.State, int64, error) {
	results, err := repo.batchHandler.Batch(&BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query:   sqlTreasuryFind,
			Args:    []interface{}{symbol},
			Init:    make([]treasuryRow, 0, 1),
			ReadAll: readAllTreasuries,
		},
		{
			Query:   sqlLockedFindAll,
			Args:    []interface{}{symbol},
			Init:    make([]lockedRow, 0),
			ReadAll: readAllLocked,
		},
	})
	if err != nil {
		return nil, 0, err
	}

	rows, _ := results[0].([]treasuryRow)
	if len(rows) == 0 {
		return nil, 0, ErrorTreasuryNotFound
	}

	locked, _ := results[1].([]lockedRow)
	balances := make(map[exchange.AccountID]exchange.Amount, len(locked))
	for _, l := range locked {
		balances[l.holder] = l.amount
	}

	state := rows[0].state
	state.Locks = exchange.RestoreLockRegistry(balances)
	return &state, rows[0].version, nil
}

// Version returns the stored version of symbol's treasury, or ErrorTreasuryNotFound.
func (repo *TreasuryRepository) Version(symbol string) (int64, error) {
	results, err := repo.batchHandler.Batch(&BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query:   sqlTreasuryVersion,
			Args:    []interface{}{symbol},
			Init:    make([]int64, 0, 1),
			ReadAll: readAllVersions,
		},
	})
	if err != nil {
		return 0, err
	}
	versions, _ := results[0].([]int64)
	if len(versions) == 0 {
		return 0, ErrorTreasuryNotFound
	}
	return versions[0], nil
}

// Commit persists the result of one operation: the new treasury state, the changed locked
// balances, the trade record and the ordered transfers. Nothing is written if the stored
// version differs from c.Version.
func (repo *TreasuryRepository) Commit(c *Commit) error {
	s := c.State
	commands := []sqlbatch.Command{
		{
			Query: sqlTreasuryUpdate,
			Args: []interface{}{
				c.Symbol, c.Version, &s.TokenBalance, &s.CurrencyBalance, &s.FeePool,
				&s.TotalSwapFeesSent, &s.LastWithdrawAmount, nullableAccount(s.MajorityHolder),
			},
			Affect: 1,
		},
	}

	for _, holder := range c.Holders {
		amount := s.Locks.Balance(holder)
		commands = append(commands, sqlbatch.Command{
			Query:  sqlLockedUpsert,
			Args:   []interface{}{c.Symbol, holder, &amount},
			Affect: 1,
		})
	}

	if t := c.Trade; t != nil {
		commands = append(commands, sqlbatch.Command{
			Query: sqlTradeInsert,
			Args: []interface{}{
				t.ID, t.Symbol, t.Trader, t.Direction, &t.TokenAmount, &t.CurrencyAmount,
				&t.SwapFee, &t.MajorityFee, t.Price, t.Time,
			},
			Affect: 1,
		})
	}

	if c.Receipt != nil {
		for i := range c.Receipt.Transfers {
			tr := &c.Receipt.Transfers[i]
			commands = append(commands, sqlbatch.Command{
				Query: sqlTransferInsert,
				Args: []interface{}{
					c.Symbol, c.Version + 1, string(c.Receipt.Op), i, tr.Asset.String(), &tr.Amount,
					tr.From, tr.To, c.Time,
				},
				Affect: 1,
			})
		}
	}

	_, err := repo.batchHandler.Batch(&BatchOptionSerializable, commands)
	return err
}
