package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treasury/domain"
	"treasury/domain/exchange"
)

type fakeTokens struct {
	tokens []domain.Token
}

func (f *fakeTokens) Find(symbol string) (*domain.Token, error) {
	for i := range f.tokens {
		if f.tokens[i].Symbol == symbol {
			return &f.tokens[i], nil
		}
	}
	return nil, domain.ErrorTokenNotFound
}

func (f *fakeTokens) FindAll() ([]domain.Token, error) {
	return f.tokens, nil
}

// fakeTreasuries prices quotes against a fresh engine.
type fakeTreasuries struct {
	engine *exchange.Engine
}

func (f *fakeTreasuries) Snapshot(symbol string) (*domain.TreasurySnapshot, error) {
	if symbol != "MOON" {
		return nil, domain.ErrorTokenNotFound
	}
	return &domain.TreasurySnapshot{
		Symbol:       symbol,
		Version:      1,
		Treasury:     f.engine.TreasuryAccount(),
		TokenBalance: f.engine.TokenBalance(),
		Threshold:    f.engine.Threshold(),
	}, nil
}

func (f *fakeTreasuries) QuoteBuy(symbol string, currencyIn exchange.Amount) (exchange.BuyQuote, error) {
	return f.engine.QuoteBuy(currencyIn)
}

func (f *fakeTreasuries) QuoteSell(symbol string, tokensIn exchange.Amount) (exchange.SellQuote, error) {
	return f.engine.QuoteSell(tokensIn)
}

type fakeCandles struct {
	interval time.Duration
	from, to time.Time
	limit    int
}

func (f *fakeCandles) Intervals() []time.Duration {
	return []time.Duration{time.Minute, time.Hour}
}

func (f *fakeCandles) LatestTrades(symbol string, limit int) ([]domain.TradeRecord, error) {
	f.limit = limit
	return []domain.TradeRecord{{Symbol: symbol, Direction: domain.DirectionBuy, CurrencyAmount: exchange.NewAmount(97900)}}, nil
}

type fakeRewards struct{}

func (f *fakeRewards) FindLatest(symbol string) (*domain.RewardSnapshot, error) {
	if symbol != "MOON" {
		return nil, nil
	}
	return &domain.RewardSnapshot{Symbol: symbol, FeePool: exchange.NewAmount(1500), MajorityHolder: "SPALICE"}, nil
}

func (f *fakeCandles) Find(symbol string, interval time.Duration, from, to time.Time) ([]domain.Candle, error) {
	f.interval, f.from, f.to = interval, from, to
	return []domain.Candle{{Symbol: symbol, Interval: interval, Start: from, Trades: 2}}, nil
}

func newTestServer() (*httptest.Server, *fakeCandles) {
	candles := &fakeCandles{}
	h := NewHandler(
		&fakeTokens{tokens: []domain.Token{{Symbol: "MOON", Name: "Moon"}}},
		&fakeTreasuries{engine: exchange.NewEngine(exchange.NewState(), "SPTREASURY", "SPPLATFORM")},
		candles,
		&fakeRewards{},
	)
	return httptest.NewServer(h.Router()), candles
}

func getJSON(t *testing.T, url string, v interface{}) int {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestTokens(t *testing.T) {
	server, _ := newTestServer()
	defer server.Close()

	var tokens []domain.Token
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/tokens", &tokens))
	assert.Len(t, tokens, 1)

	var token domain.Token
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/tokens/MOON", &token))
	assert.Equal(t, "Moon", token.Name)

	var e errorResponse
	assert.Equal(t, http.StatusNotFound, getJSON(t, server.URL+"/tokens/SUN", &e))
	assert.Equal(t, domain.ErrorTokenNotFound.Error(), e.Error)
}

func TestState(t *testing.T) {
	server, _ := newTestServer()
	defer server.Close()

	var body map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/tokens/MOON/state", &body))
	assert.Equal(t, "2100000000000000", body["token_balance"])
	assert.Equal(t, "1500", body["threshold"])
	assert.Equal(t, "SPTREASURY", body["treasury"])
}

func TestQuoteBuy(t *testing.T) {
	server, _ := newTestServer()
	defer server.Close()

	var body map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/tokens/MOON/quote/buy?amount=100000", &body))
	assert.Equal(t, "128662619688341", body["tokens_out"])
	assert.Equal(t, "97900", body["net_currency_in"])
}

func TestQuoteRejections(t *testing.T) {
	server, _ := newTestServer()
	defer server.Close()

	var e errorResponse
	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/tokens/MOON/quote/buy", &e))

	e = errorResponse{}
	assert.Equal(t, http.StatusUnprocessableEntity, getJSON(t, server.URL+"/tokens/MOON/quote/sell?amount=5", &e))
	assert.Equal(t, "invalid_amount", e.Kind)

	e = errorResponse{}
	assert.Equal(t, http.StatusUnprocessableEntity, getJSON(t, server.URL+"/tokens/MOON/quote/buy?amount=-1", &e))
	assert.Equal(t, "invalid_amount", e.Kind)
}

func TestCandles(t *testing.T) {
	server, candles := newTestServer()
	defer server.Close()

	var list []domain.Candle
	url := server.URL + "/tokens/MOON/candles?interval=1m&from=2024-05-01T10:00:00Z&to=1714561200"
	assert.Equal(t, http.StatusOK, getJSON(t, url, &list))
	require.Len(t, list, 1)
	assert.Equal(t, time.Minute, candles.interval)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), candles.from)
	assert.Equal(t, time.Unix(1714561200, 0).UTC(), candles.to)

	var e errorResponse
	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/tokens/MOON/candles", &e))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/tokens/MOON/candles?interval=1m&from=1714561200&to=1714561200", &e))

	e = errorResponse{}
	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/tokens/MOON/candles?interval=7m", &e))
	assert.Equal(t, ErrorUnknownInterval.Error(), e.Error)
}

func TestTrades(t *testing.T) {
	server, candles := newTestServer()
	defer server.Close()

	var list []map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/tokens/MOON/trades?limit=5", &list))
	require.Len(t, list, 1)
	assert.Equal(t, "97900", list[0]["currency_amount"])
	assert.Equal(t, 5, candles.limit)

	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/tokens/MOON/trades", &list))
	assert.Equal(t, 0, candles.limit)

	var e errorResponse
	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/tokens/MOON/trades?limit=x", &e))
}

func TestRewards(t *testing.T) {
	server, _ := newTestServer()
	defer server.Close()

	var body map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, server.URL+"/tokens/MOON/rewards", &body))
	assert.Equal(t, "1500", body["fee_pool"])
	assert.Equal(t, "SPALICE", body["majority_holder"])

	var e errorResponse
	assert.Equal(t, http.StatusNotFound, getJSON(t, server.URL+"/tokens/SUN/rewards", &e))
	assert.Equal(t, ErrorNoRewardSnapshot.Error(), e.Error)
}
