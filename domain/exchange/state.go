package exchange

import "errors"

// Launch constants of every treasury.
var (
	// MaxSupply is 21,000,000 tokens of 10^8 base units each.
	MaxSupply = NewAmount(21_000_000 * 100_000_000)

	// InitialVirtualCurrency is added to the real currency balance on the curve so the first
	// trade already has a price.
	InitialVirtualCurrency = NewAmount(1_500_000)

	DefaultUnlockThreshold = NewAmount(1500)
	MaxWithdrawCap         = NewAmount(1_000_000)
)

func is(err, target error) bool {
	return errors.Is(err, target)
}

// AccountID identifies a caller, holder or custody account on the host ledger.
type AccountID string

// State is the complete mutable state of one treasury.
type State struct {
	TokenBalance          Amount
	CurrencyBalance       Amount
	VirtualCurrencyOffset Amount
	FeePool               Amount
	TotalSwapFeesSent     Amount
	LastWithdrawAmount    Amount

	// MajorityHolder is empty while nobody has claimed.
	MajorityHolder AccountID

	Locks LockRegistry
}

// NewState returns the state of a freshly launched treasury.
func NewState() *State {
	return &State{
		TokenBalance:          MaxSupply,
		VirtualCurrencyOffset: InitialVirtualCurrency,
		Locks:                 NewLockRegistry(),
	}
}

// CurveCurrency is the currency side of the constant product: real balance plus the virtual
// offset.
func (s *State) CurveCurrency() Amount {
	return add(&s.CurrencyBalance, &s.VirtualCurrencyOffset)
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	c := *s
	c.Locks = s.Locks.Clone()
	return &c
}
