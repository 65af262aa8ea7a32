package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treasury/domain/exchange"
)

func TestRewardSnapshot(t *testing.T) {
	_, tokens, treasuries := newTestInteractors()
	_, err := tokens.Launch("MOON", "Moon", "SPCREATOR")
	require.NoError(t, err)
	_, err = tokens.Launch("SUN", "Sun", "SPCREATOR")
	require.NoError(t, err)

	_, err = treasuries.Buy("MOON", "SPALICE", amount(100000))
	require.NoError(t, err)
	_, err = treasuries.Lock("MOON", "SPALICE", amount(600))
	require.NoError(t, err)
	_, err = treasuries.Lock("MOON", "SPBOB", amount(400))
	require.NoError(t, err)
	_, err = treasuries.ClaimMajority("MOON", "SPALICE")
	require.NoError(t, err)

	store := &memoryRewardStore{}
	rewards := NewRewardInteractor(tokens, treasuries, store)

	snapshots, err := rewards.Snapshot()
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	moon, err := rewards.FindLatest("moon")
	require.NoError(t, err)
	assert.Equal(t, amount(1500), moon.FeePool)
	assert.Equal(t, amount(600), moon.TotalSwapFeesSent)
	assert.Equal(t, exchange.AccountID("SPALICE"), moon.MajorityHolder)
	assert.Equal(t, amount(600), moon.HolderLocked)
	assert.Equal(t, "0.6", moon.HolderShare.String())

	sun, err := rewards.FindLatest("SUN")
	require.NoError(t, err)
	assert.True(t, sun.HolderShare.IsZero())
	assert.Empty(t, sun.MajorityHolder)
}
