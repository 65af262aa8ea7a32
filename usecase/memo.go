package usecase

import (
	"treasury/domain"
)

const (
	AggregationMemoKeyPrefix = "aggregation."
)

type MemoStore interface {
	Find(key string) (*domain.Memo, error)
}

type MemoInteractor struct {
	memoStore MemoStore
}

func NewMemoInteractor(memoStore MemoStore) *MemoInteractor {
	interactor := &MemoInteractor{
		memoStore: memoStore,
	}
	return interactor
}

func AggregationMemoKey(symbol string) string {
	return AggregationMemoKeyPrefix + symbol
}

// GetAggregationCursor returns how far candle aggregation of symbol got. A token that was
// never aggregated yields the zero cursor.
func (interactor *MemoInteractor) GetAggregationCursor(symbol string) (*domain.AggregationMemo, error) {
	var aggregationMemo domain.AggregationMemo
	memo, err := interactor.memoStore.Find(AggregationMemoKey(symbol))
	if err != nil {
		return nil, err
	}
	if memo != nil {
		if err := aggregationMemo.FromJson(memo.Memo); err != nil {
			return nil, err
		}
	}
	return &aggregationMemo, nil
}
