package usecase

import (
	"time"

	"treasury/domain"
	"treasury/infrastructure/logger"
)

const (
	aggregateBatchSize = 500
	MaxLatestTrades    = 200
)

type TradeStore interface {
	FindSince(symbol string, afterTime time.Time, afterID string, limit int) ([]domain.TradeRecord, error)
	FindLatest(symbol string, limit int) ([]domain.TradeRecord, error)
}

type CandleStore interface {
	Upsert(candles []*domain.Candle, memoKey string, memo domain.Memorable) error
	Find(symbol string, interval time.Duration, from, to time.Time) ([]domain.Candle, error)
}

type CandleInteractor struct {
	memoInteractor *MemoInteractor
	tradeStore     TradeStore
	candleStore    CandleStore
	intervals      []time.Duration
}

func NewCandleInteractor(memoInteractor *MemoInteractor,
	tradeStore TradeStore,
	candleStore CandleStore,
	intervals []time.Duration) *CandleInteractor {
	interactor := &CandleInteractor{
		memoInteractor: memoInteractor,
		tradeStore:     tradeStore,
		candleStore:    candleStore,
		intervals:      intervals,
	}
	return interactor
}

type candleKey struct {
	interval time.Duration
	start    time.Time
}

// Aggregate folds every trade of symbol recorded since the last run into candles of all
// configured intervals. Buckets already stored are extended, not replaced. It returns the
// number of trades folded.
func (interactor *CandleInteractor) Aggregate(symbol string) (int, error) {
	symbol = NormalizeSymbol(symbol)
	cursor, err := interactor.memoInteractor.GetAggregationCursor(symbol)
	if err != nil {
		logger.Errorf("🔴 reading aggregation cursor of %v - %v", symbol, err.Error())
		return 0, err
	}

	total := 0
	for {
		trades, err := interactor.tradeStore.FindSince(symbol, cursor.LastTradeTime, cursor.LastTradeID, aggregateBatchSize)
		if err != nil {
			logger.Errorf("🔴 reading trades of %v - %v", symbol, err.Error())
			return total, err
		}
		if len(trades) == 0 {
			return total, nil
		}

		candles, err := interactor.fold(symbol, trades)
		if err != nil {
			return total, err
		}

		last := trades[len(trades)-1]
		next := &domain.AggregationMemo{
			LastTradeTime: last.Time,
			LastTradeID:   last.ID.String(),
		}
		err = interactor.candleStore.Upsert(candles, AggregationMemoKey(symbol), next)
		if err != nil {
			logger.Errorf("🔴 storing candles of %v - %v", symbol, err.Error())
			return total, err
		}

		cursor = next
		total += len(trades)
		if len(trades) < aggregateBatchSize {
			return total, nil
		}
	}
}

func (interactor *CandleInteractor) fold(symbol string, trades []domain.TradeRecord) ([]*domain.Candle, error) {
	buckets := make(map[candleKey]*domain.Candle)
	order := make([]*domain.Candle, 0)

	for i := range trades {
		trade := &trades[i]
		for _, interval := range interactor.intervals {
			key := candleKey{interval: interval, start: domain.BucketStart(trade.Time, interval)}
			if candle, ok := buckets[key]; ok {
				candle.Add(trade)
				continue
			}

			stored, err := interactor.candleStore.Find(symbol, interval, key.start, key.start.Add(interval))
			if err != nil {
				logger.Errorf("🔴 reading candle of %v - %v", symbol, err.Error())
				return nil, err
			}

			var candle *domain.Candle
			if len(stored) > 0 {
				candle = &stored[0]
				candle.Add(trade)
			} else {
				candle = domain.NewCandle(trade, interval)
			}
			buckets[key] = candle
			order = append(order, candle)
		}
	}
	return order, nil
}

func (interactor *CandleInteractor) Find(symbol string, interval time.Duration, from, to time.Time) ([]domain.Candle, error) {
	return interactor.candleStore.Find(NormalizeSymbol(symbol), interval, from, to)
}

// Intervals lists the candle widths aggregation maintains.
func (interactor *CandleInteractor) Intervals() []time.Duration {
	return interactor.intervals
}

// LatestTrades returns up to limit trades of symbol, newest first. The limit is clamped to
// MaxLatestTrades.
func (interactor *CandleInteractor) LatestTrades(symbol string, limit int) ([]domain.TradeRecord, error) {
	if limit <= 0 || limit > MaxLatestTrades {
		limit = MaxLatestTrades
	}
	return interactor.tradeStore.FindLatest(NormalizeSymbol(symbol), limit)
}
