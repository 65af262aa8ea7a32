package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treasury/domain"
	"treasury/domain/exchange"
)

func TestLaunchValidates(t *testing.T) {
	_, tokens, _ := newTestInteractors()

	cases := []struct {
		symbol  string
		name    string
		creator exchange.AccountID
		err     error
	}{
		{"M", "Moon", "SP1", domain.ErrorInvalidSymbol},
		{"MOON!", "Moon", "SP1", domain.ErrorInvalidSymbol},
		{"ABCDEFGHIJKLM", "Moon", "SP1", domain.ErrorInvalidSymbol},
		{"MOON", "  ", "SP1", domain.ErrorInvalidName},
		{"MOON", "Moon", "", exchange.ErrorInvalidAccount},
	}
	for _, c := range cases {
		_, err := tokens.Launch(c.symbol, c.name, c.creator)
		assert.ErrorIs(t, err, c.err, c.symbol)
	}
}

func TestLaunchCreatesTreasury(t *testing.T) {
	store, tokens, _ := newTestInteractors()

	token, err := tokens.Launch("moon", "Moon Coin", "SP1")
	require.NoError(t, err)
	assert.Equal(t, "MOON", token.Symbol)
	assert.Equal(t, exchange.AccountID("SPTREASURY.MOON"), token.Treasury)

	state, version, err := store.Load("MOON")
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	assert.Equal(t, exchange.MaxSupply, state.TokenBalance)
	assert.Equal(t, exchange.InitialVirtualCurrency, state.VirtualCurrencyOffset)

	_, err = tokens.Launch("MOON", "Again", "SP2")
	assert.ErrorIs(t, err, domain.ErrorTokenExists)
}

func TestFindCachesTokens(t *testing.T) {
	store, tokens, _ := newTestInteractors()

	_, err := tokens.Find("NONE")
	assert.ErrorIs(t, err, domain.ErrorTokenNotFound)

	_, err = tokens.Launch("MOON", "Moon", "SP1")
	require.NoError(t, err)
	reads := store.tokenReads

	token, err := tokens.Find("moon")
	require.NoError(t, err)
	assert.Equal(t, "Moon", token.Name)
	assert.Equal(t, reads, store.tokenReads)
}
