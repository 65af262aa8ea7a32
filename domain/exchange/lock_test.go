package exchange

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRestoreLockRegistry(t *testing.T) {
	r := RestoreLockRegistry(map[AccountID]Amount{
		bob:   amt(400),
		alice: amt(600),
		"SP9": amt(0),
	})
	require.Equal(t, amt(1000), r.Total())
	require.Equal(t, []AccountID{alice, bob, "SP9"}, r.Holders())

	ok, err := r.IsMajority(alice)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.IsMajority("SP9")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUnlockKeepsZeroEntries(t *testing.T) {
	r := NewLockRegistry()
	a := amt(5)
	require.NoError(t, r.Lock(alice, &a))
	require.NoError(t, r.Unlock(alice, &a))

	require.Equal(t, []AccountID{alice}, r.Holders())
	require.True(t, isZero(r.Total()))

	_, err := r.IsMajority(alice)
	require.ErrorIs(t, err, ErrorNothingToUnlock)
}

func TestThresholdFollowsLastWithdraw(t *testing.T) {
	s := NewState()
	require.Equal(t, DefaultUnlockThreshold, EffectiveThreshold(s))

	w := amt(900)
	RatchetWithdraw(s, &w)
	require.Equal(t, amt(900), EffectiveThreshold(s))

	// a smaller withdrawal never lowers the bar
	w = amt(200)
	RatchetWithdraw(s, &w)
	require.Equal(t, amt(900), EffectiveThreshold(s))

	s.FeePool = amt(899)
	require.False(t, CanUnlock(s))
	s.FeePool = amt(900)
	require.True(t, CanUnlock(s))
}
