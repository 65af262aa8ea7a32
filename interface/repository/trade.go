package repository

import (
	"time"

	"treasury/domain"

	"github.com/behrang/sqlbatch"
)

const (
	sqlTradeFindSince = `
	select
		id, symbol, trader, direction, token_amount, currency_amount, swap_fee, majority_fee, price, time
	from trades
	where symbol = $1 and (time, id) > ($2, $3::uuid)
	order by time, id
	limit $4
`

	sqlTradeFindLatest = `
	select
		id, symbol, trader, direction, token_amount, currency_amount, swap_fee, majority_fee, price, time
	from trades
	where symbol = $1
	order by time desc, id desc
	limit $2
`
)

type TradeRepository struct {
	batchHandler BatchHandler
}

func NewTradeRepository(db BatchHandler) *TradeRepository {
	return &TradeRepository{batchHandler: db}
}

func readAllTrades(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	r := domain.TradeRecord{}
	err := scan(
		&r.ID, &r.Symbol, &r.Trader, &r.Direction, &r.TokenAmount, &r.CurrencyAmount,
		&r.SwapFee, &r.MajorityFee, &r.Price, &r.Time,
	)
	list := memo.([]domain.TradeRecord)
	list = append(list, r)
	return list, err
}

// FindSince returns up to limit trades of symbol ordered by (time, id) that come strictly
// after the given cursor. An empty afterID starts from the nil uuid.
func (repo *TradeRepository) FindSince(symbol string, afterTime time.Time, afterID string, limit int) ([]domain.TradeRecord, error) {
	if afterID == "" {
		afterID = "00000000-0000-0000-0000-000000000000"
	}
	results, err := repo.batchHandler.Batch(&BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query:   sqlTradeFindSince,
			Args:    []interface{}{symbol, afterTime, afterID, limit},
			Init:    make([]domain.TradeRecord, 0, limit),
			ReadAll: readAllTrades,
		},
	})
	if err != nil {
		return nil, err
	}
	result, _ := results[0].([]domain.TradeRecord)
	return result, nil
}

// FindLatest returns the most recent trades of symbol, newest first.
func (repo *TradeRepository) FindLatest(symbol string, limit int) ([]domain.TradeRecord, error) {
	results, err := repo.batchHandler.Batch(&BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query:   sqlTradeFindLatest,
			Args:    []interface{}{symbol, limit},
			Init:    make([]domain.TradeRecord, 0, limit),
			ReadAll: readAllTrades,
		},
	})
	if err != nil {
		return nil, err
	}
	result, _ := results[0].([]domain.TradeRecord)
	return result, nil
}
