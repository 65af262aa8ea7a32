package domain

import (
	"encoding/json"
	"time"
)

type Memorable interface {
	ToJson() string
	FromJson(jstr string) error
}

type Memo struct {
	Key  string `json:"key"`
	Memo string `json:"memo"`
}

// AggregationMemo remembers how far candle aggregation got for one token.
type AggregationMemo struct {
	LastTradeTime time.Time `json:"last_trade_time"`
	LastTradeID   string    `json:"last_trade_id"`
}

func (obj *AggregationMemo) ToJson() string {
	jstr, err := json.Marshal(obj)
	if err != nil {
		return err.Error()
	}
	return string(jstr)
}

func (obj *AggregationMemo) FromJson(jstr string) error {
	err := json.Unmarshal([]byte(jstr), obj)
	return err
}
