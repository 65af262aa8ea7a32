package repository

import (
	"time"

	"treasury/domain"

	"github.com/behrang/sqlbatch"
)

const (
	sqlCandleUpsert = `
	insert into candles as c (
			symbol, interval_seconds, start, open, high, low, close, token_volume, currency_volume, trades
		)
		values (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	on conflict (symbol, interval_seconds, start) do
		update set
			high = $5,
			low = $6,
			close = $7,
			token_volume = $8,
			currency_volume = $9,
			trades = $10
`

	sqlCandleFind = `
	select
		symbol, interval_seconds, start, open, high, low, close, token_volume, currency_volume, trades
	from candles
	where symbol = $1 and interval_seconds = $2 and start >= $3 and start < $4
	order by start
`
)

type CandleRepository struct {
	batchHandler BatchHandler
}

func NewCandleRepository(db BatchHandler) *CandleRepository {
	return &CandleRepository{batchHandler: db}
}

func readAllCandles(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	r := domain.Candle{}
	var seconds int64
	err := scan(
		&r.Symbol, &seconds, &r.Start, &r.Open, &r.High, &r.Low, &r.Close,
		&r.TokenVolume, &r.CurrencyVolume, &r.Trades,
	)
	r.Interval = time.Duration(seconds) * time.Second
	list := memo.([]domain.Candle)
	list = append(list, r)
	return list, err
}

func candleUpsertCommand(c *domain.Candle) sqlbatch.Command {
	return sqlbatch.Command{
		Query: sqlCandleUpsert,
		Args: []interface{}{
			c.Symbol, int64(c.Interval / time.Second), c.Start, c.Open, c.High, c.Low, c.Close,
			&c.TokenVolume, &c.CurrencyVolume, c.Trades,
		},
		Affect: 1,
	}
}

// Upsert writes the candles and the aggregation memo in one transaction, so a restarted
// aggregator never folds a trade twice.
func (repo *CandleRepository) Upsert(candles []*domain.Candle, memoKey string, memo domain.Memorable) error {
	commands := make([]sqlbatch.Command, 0, len(candles)+1)
	for _, c := range candles {
		commands = append(commands, candleUpsertCommand(c))
	}
	if memo != nil {
		commands = append(commands, sqlbatch.Command{
			Query:  sqlMemoUpsert,
			Args:   []interface{}{memoKey, memo.ToJson()},
			Affect: 1,
		})
	}
	if len(commands) == 0 {
		return nil
	}
	_, err := repo.batchHandler.Batch(&BatchOptionSerializable, commands)
	return err
}

// Find returns the candles of symbol and interval whose start lies in [from, to).
func (repo *CandleRepository) Find(symbol string, interval time.Duration, from, to time.Time) ([]domain.Candle, error) {
	results, err := repo.batchHandler.Batch(&BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query:   sqlCandleFind,
			Args:    []interface{}{symbol, int64(interval / time.Second), from, to},
			Init:    make([]domain.Candle, 0),
			ReadAll: readAllCandles,
		},
	})
	if err != nil {
		return nil, err
	}
	result, _ := results[0].([]domain.Candle)
	return result, nil
}
