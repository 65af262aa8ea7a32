package exporter

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"treasury/domain/exchange"
)

const (
	METRIC_ERROR_COUNT     = "error_count"
	METRIC_TRADE_COUNT     = "trade_count"
	METRIC_REJECTION_COUNT = "rejection_count"
	METRIC_CONFLICT_COUNT  = "conflict_count"

	METRIC_FEE_POOL         = "fee_pool"
	METRIC_TOTAL_LOCKED     = "total_locked"
	METRIC_CURRENCY_BALANCE = "currency_balance"
	METRIC_TOKEN_BALANCE    = "token_balance"
)

var (
	counters    map[string]prometheus.Counter
	counterVecs map[string]*prometheus.CounterVec
	gaugeVecs   map[string]*prometheus.GaugeVec

	initOnce sync.Once
)

func newCounterVec(name, help string, labels ...string) {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treasury",
		Subsystem: "engine",
		Name:      name,
		Help:      help,
	}, labels)
	prometheus.MustRegister(vec)
	counterVecs[name] = vec
}

func newGaugeVec(name, help string) {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "treasury",
		Subsystem: "state",
		Name:      name,
		Help:      help,
	}, []string{"symbol"})
	prometheus.MustRegister(vec)
	gaugeVecs[name] = vec
}

// Init registers every metric with the default registry. Calling it again is a no-op.
func Init() {
	initOnce.Do(func() {

		// --- Static Metrics: the metrics which are not depended on running configuration

		// Create metric spaces
		counters = make(map[string]prometheus.Counter)
		counterVecs = make(map[string]*prometheus.CounterVec)
		gaugeVecs = make(map[string]*prometheus.GaugeVec)

		// Register metrics
		counter := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "treasury",
			Subsystem: "engine",
			Name:      METRIC_ERROR_COUNT,
			Help:      "Counts the number of failed jobs and requests",
		})
		prometheus.MustRegister(counter)
		counters[METRIC_ERROR_COUNT] = counter

		newCounterVec(METRIC_TRADE_COUNT, "Counts committed trades", "symbol", "direction")
		newCounterVec(METRIC_REJECTION_COUNT, "Counts operations rejected by the engine", "op", "kind")
		newCounterVec(METRIC_CONFLICT_COUNT, "Counts commits lost to a concurrent writer", "symbol")

		newGaugeVec(METRIC_FEE_POOL, "Majority fee pool in sats")
		newGaugeVec(METRIC_TOTAL_LOCKED, "Total locked tokens in base units")
		newGaugeVec(METRIC_CURRENCY_BALANCE, "Real currency held by the treasury in sats")
		newGaugeVec(METRIC_TOKEN_BALANCE, "Tokens left in the treasury in base units")
	})
}

func GetCounter(name string) prometheus.Counter {
	return counters[name]
}

func IncErrorCount() {
	if c, ok := counters[METRIC_ERROR_COUNT]; ok {
		c.Inc()
	}
}

func IncTradeCount(symbol, direction string) {
	if vec, ok := counterVecs[METRIC_TRADE_COUNT]; ok {
		vec.WithLabelValues(symbol, direction).Inc()
	}
}

func IncRejectionCount(op exchange.Operation, err error) {
	if vec, ok := counterVecs[METRIC_REJECTION_COUNT]; ok {
		vec.WithLabelValues(string(op), exchange.ErrorKind(err)).Inc()
	}
}

func IncConflictCount(symbol string) {
	if vec, ok := counterVecs[METRIC_CONFLICT_COUNT]; ok {
		vec.WithLabelValues(symbol).Inc()
	}
}

// SetTreasuryState publishes the balances of one treasury.
func SetTreasuryState(symbol string, state *exchange.State) {
	if gaugeVecs == nil {
		return
	}
	locked := state.Locks.Total()
	gaugeVecs[METRIC_FEE_POOL].WithLabelValues(symbol).Set(state.FeePool.Float64())
	gaugeVecs[METRIC_TOTAL_LOCKED].WithLabelValues(symbol).Set(locked.Float64())
	gaugeVecs[METRIC_CURRENCY_BALANCE].WithLabelValues(symbol).Set(state.CurrencyBalance.Float64())
	gaugeVecs[METRIC_TOKEN_BALANCE].WithLabelValues(symbol).Set(state.TokenBalance.Float64())
}
