package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"treasury/domain/exchange"
)

const (
	DirectionBuy  = "buy"
	DirectionSell = "sell"
)

// TokenUnit is the number of base units in one whole token.
const TokenUnit = 100_000_000

// TradeRecord is one executed buy or sell, the input of candle aggregation.
type TradeRecord struct {
	ID             uuid.UUID          `json:"id"`
	Symbol         string             `json:"symbol"`
	Trader         exchange.AccountID `json:"trader"`
	Direction      string             `json:"direction"`
	TokenAmount    exchange.Amount    `json:"token_amount"`
	CurrencyAmount exchange.Amount    `json:"currency_amount"`
	SwapFee        exchange.Amount    `json:"swap_fee"`
	MajorityFee    exchange.Amount    `json:"majority_fee"`
	Price          decimal.Decimal    `json:"price"`
	Time           time.Time          `json:"time"`
}

// NewTradeRecord builds the record of a committed buy or sell receipt. state is the treasury
// state after the trade; the recorded price is the spot price it leaves behind. Other
// receipts yield nil.
func NewTradeRecord(symbol string, receipt *exchange.Receipt, state *exchange.State, at time.Time) *TradeRecord {
	r := &TradeRecord{
		ID:     uuid.New(),
		Symbol: symbol,
		Trader: receipt.Caller,
		Price:  SpotPrice(state),
		Time:   at,
	}
	switch {
	case receipt.Buy != nil:
		r.Direction = DirectionBuy
		r.TokenAmount = receipt.Buy.TokensOut
		r.CurrencyAmount = receipt.Buy.NetCurrencyIn
		r.SwapFee = receipt.Buy.Fee.Swap
		r.MajorityFee = receipt.Buy.Fee.Majority
	case receipt.Sell != nil:
		r.Direction = DirectionSell
		r.TokenAmount = receipt.Transfers[0].Amount
		r.CurrencyAmount = receipt.Sell.CurrencyOut
		r.SwapFee = receipt.Sell.Fee.Swap
		r.MajorityFee = receipt.Sell.Fee.Majority
	default:
		return nil
	}
	return r
}

// SpotPrice is the marginal curve price in sats per whole token.
func SpotPrice(state *exchange.State) decimal.Decimal {
	if state.TokenBalance.IsZero() {
		return decimal.Zero
	}
	curve := state.CurveCurrency()
	num := decimal.NewFromBigInt(curve.ToBig(), 0).Mul(decimal.NewFromInt(TokenUnit))
	den := decimal.NewFromBigInt(state.TokenBalance.ToBig(), 0)
	return num.DivRound(den, 12)
}
