package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"treasury/domain/exchange"
)

type Candle struct {
	Symbol         string          `json:"symbol"`
	Interval       time.Duration   `json:"interval"`
	Start          time.Time       `json:"start"`
	Open           decimal.Decimal `json:"open"`
	High           decimal.Decimal `json:"high"`
	Low            decimal.Decimal `json:"low"`
	Close          decimal.Decimal `json:"close"`
	TokenVolume    exchange.Amount `json:"token_volume"`
	CurrencyVolume exchange.Amount `json:"currency_volume"`
	Trades         int64           `json:"trades"`
}

// BucketStart returns the start of the interval bucket t falls into, in UTC.
func BucketStart(t time.Time, interval time.Duration) time.Time {
	return t.UTC().Truncate(interval)
}

// NewCandle opens a bucket with its first trade.
func NewCandle(trade *TradeRecord, interval time.Duration) *Candle {
	return &Candle{
		Symbol:         trade.Symbol,
		Interval:       interval,
		Start:          BucketStart(trade.Time, interval),
		Open:           trade.Price,
		High:           trade.Price,
		Low:            trade.Price,
		Close:          trade.Price,
		TokenVolume:    trade.TokenAmount,
		CurrencyVolume: trade.CurrencyAmount,
		Trades:         1,
	}
}

// Add folds a later trade of the same bucket into c. Trades must arrive in time order.
func (c *Candle) Add(trade *TradeRecord) {
	if trade.Price.GreaterThan(c.High) {
		c.High = trade.Price
	}
	if trade.Price.LessThan(c.Low) {
		c.Low = trade.Price
	}
	c.Close = trade.Price
	c.TokenVolume.Add(&c.TokenVolume, &trade.TokenAmount)
	c.CurrencyVolume.Add(&c.CurrencyVolume, &trade.CurrencyAmount)
	c.Trades++
}
