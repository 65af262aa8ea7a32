package exchange

// EffectiveThreshold is the fee pool needed before any unlock: the default until the first
// accepted withdrawal, then the last accepted withdrawal amount.
func EffectiveThreshold(s *State) Amount {
	if s.LastWithdrawAmount.IsZero() {
		return DefaultUnlockThreshold
	}
	return s.LastWithdrawAmount
}

func CanUnlock(s *State) bool {
	threshold := EffectiveThreshold(s)
	return !s.FeePool.Lt(&threshold)
}

// RatchetWithdraw records amount as the last withdrawal iff it is larger than the current one
// and below MaxWithdrawCap. The threshold therefore never falls.
func RatchetWithdraw(s *State, amount *Amount) {
	if amount.Gt(&s.LastWithdrawAmount) && amount.Lt(&MaxWithdrawCap) {
		s.LastWithdrawAmount = *amount
	}
}
