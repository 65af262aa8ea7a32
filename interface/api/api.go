package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"treasury/domain"
	"treasury/domain/exchange"
	"treasury/infrastructure/logger"
	"treasury/interface/exporter"
)

const defaultCandleWindow = 24 * time.Hour

var (
	ErrorMissingParameter = errors.New("missing parameter")
	ErrorInvalidParameter = errors.New("invalid parameter")
	ErrorUnknownInterval  = errors.New("interval is not aggregated")
	ErrorNoRewardSnapshot = errors.New("no reward snapshot taken yet")
)

type TokenReader interface {
	Find(symbol string) (*domain.Token, error)
	FindAll() ([]domain.Token, error)
}

type TreasuryReader interface {
	Snapshot(symbol string) (*domain.TreasurySnapshot, error)
	QuoteBuy(symbol string, currencyIn exchange.Amount) (exchange.BuyQuote, error)
	QuoteSell(symbol string, tokensIn exchange.Amount) (exchange.SellQuote, error)
}

type CandleReader interface {
	Find(symbol string, interval time.Duration, from, to time.Time) ([]domain.Candle, error)
	Intervals() []time.Duration
	LatestTrades(symbol string, limit int) ([]domain.TradeRecord, error)
}

type RewardReader interface {
	FindLatest(symbol string) (*domain.RewardSnapshot, error)
}

// Handler serves the read-only query API. Nothing reachable from it mutates a treasury.
type Handler struct {
	tokens     TokenReader
	treasuries TreasuryReader
	candles    CandleReader
	rewards    RewardReader
}

func NewHandler(tokens TokenReader, treasuries TreasuryReader, candles CandleReader, rewards RewardReader) *Handler {
	return &Handler{
		tokens:     tokens,
		treasuries: treasuries,
		candles:    candles,
		rewards:    rewards,
	}
}

// Router wires every route, /metrics included.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/tokens", h.handleTokens).Methods("GET")
	r.HandleFunc("/tokens/{symbol}", h.handleToken).Methods("GET")
	r.HandleFunc("/tokens/{symbol}/state", h.handleState).Methods("GET")
	r.HandleFunc("/tokens/{symbol}/quote/buy", h.handleQuoteBuy).Methods("GET")
	r.HandleFunc("/tokens/{symbol}/quote/sell", h.handleQuoteSell).Methods("GET")
	r.HandleFunc("/tokens/{symbol}/candles", h.handleCandles).Methods("GET")
	r.HandleFunc("/tokens/{symbol}/trades", h.handleTrades).Methods("GET")
	r.HandleFunc("/tokens/{symbol}/rewards", h.handleRewards).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debugf("🔵 %v %v in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("🔴 encoding response - %v", err.Error())
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrorTokenNotFound), errors.Is(err, ErrorNoRewardSnapshot):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrorMissingParameter), errors.Is(err, ErrorInvalidParameter),
		errors.Is(err, ErrorUnknownInterval):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case exchange.ErrorKind(err) != "unknown":
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: exchange.ErrorKind(err)})
	default:
		exporter.IncErrorCount()
		logger.Errorf("🔴 serving request - %v", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func amountParam(r *http.Request) (exchange.Amount, error) {
	value := r.URL.Query().Get("amount")
	if value == "" {
		return exchange.Amount{}, ErrorMissingParameter
	}
	return exchange.ParseAmount(value)
}

// timeParam accepts RFC 3339 or unix seconds.
func timeParam(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	secs, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, ErrorInvalidParameter
	}
	return time.Unix(secs, 0).UTC(), nil
}

func (h *Handler) handleTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.tokens.FindAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokens)
}

func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.tokens.Find(mux.Vars(r)["symbol"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.treasuries.Snapshot(mux.Vars(r)["symbol"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleQuoteBuy(w http.ResponseWriter, r *http.Request) {
	amount, err := amountParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	quote, err := h.treasuries.QuoteBuy(mux.Vars(r)["symbol"], amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &quote)
}

func (h *Handler) handleQuoteSell(w http.ResponseWriter, r *http.Request) {
	amount, err := amountParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	quote, err := h.treasuries.QuoteSell(mux.Vars(r)["symbol"], amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &quote)
}

func (h *Handler) handleCandles(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("interval")
	if value == "" {
		writeError(w, ErrorMissingParameter)
		return
	}
	interval, err := time.ParseDuration(value)
	if err != nil || interval <= 0 {
		writeError(w, ErrorInvalidParameter)
		return
	}
	if !h.aggregated(interval) {
		writeError(w, ErrorUnknownInterval)
		return
	}

	to, err := timeParam(r, "to", time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	from, err := timeParam(r, "from", to.Add(-defaultCandleWindow))
	if err != nil {
		writeError(w, err)
		return
	}
	if !from.Before(to) {
		writeError(w, ErrorInvalidParameter)
		return
	}

	candles, err := h.candles.Find(mux.Vars(r)["symbol"], interval, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candles)
}

func (h *Handler) aggregated(interval time.Duration) bool {
	for _, i := range h.candles.Intervals() {
		if i == interval {
			return true
		}
	}
	return false
}

func (h *Handler) handleTrades(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			writeError(w, ErrorInvalidParameter)
			return
		}
		limit = n
	}

	trades, err := h.candles.LatestTrades(mux.Vars(r)["symbol"], limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trades)
}

func (h *Handler) handleRewards(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.rewards.FindLatest(mux.Vars(r)["symbol"])
	if err != nil {
		writeError(w, err)
		return
	}
	if snapshot == nil {
		writeError(w, ErrorNoRewardSnapshot)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
