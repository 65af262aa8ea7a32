package exporter

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"treasury/domain/exchange"
)

func TestExporterCounters(t *testing.T) {
	Init()
	Init()

	IncTradeCount("MOON", "buy")
	IncTradeCount("MOON", "buy")
	IncRejectionCount(exchange.OpSell, exchange.ErrorInsufficientReserve)
	IncErrorCount()

	assert.Equal(t, 2.0, testutil.ToFloat64(counterVecs[METRIC_TRADE_COUNT].WithLabelValues("MOON", "buy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counterVecs[METRIC_REJECTION_COUNT].WithLabelValues("sell", "insufficient_reserve")))
	assert.Equal(t, 1.0, testutil.ToFloat64(GetCounter(METRIC_ERROR_COUNT)))
}

func TestExporterTreasuryState(t *testing.T) {
	Init()
	state := exchange.NewState()
	state.FeePool = exchange.NewAmount(1500)

	SetTreasuryState("MOON", state)

	assert.Equal(t, 1500.0, testutil.ToFloat64(gaugeVecs[METRIC_FEE_POOL].WithLabelValues("MOON")))
	assert.Equal(t, 2.1e15, testutil.ToFloat64(gaugeVecs[METRIC_TOKEN_BALANCE].WithLabelValues("MOON")))
}
