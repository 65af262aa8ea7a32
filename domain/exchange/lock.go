package exchange

import "sort"

// LockRegistry is the per-holder ledger of locked tokens. Entries are created by the first
// lock and kept even when they drop back to zero.
type LockRegistry struct {
	balances map[AccountID]Amount
	total    Amount
}

func NewLockRegistry() LockRegistry {
	return LockRegistry{balances: make(map[AccountID]Amount)}
}

// RestoreLockRegistry rebuilds a registry from persisted balances; the total is recomputed.
func RestoreLockRegistry(balances map[AccountID]Amount) LockRegistry {
	r := NewLockRegistry()
	for holder, amount := range balances {
		r.balances[holder] = amount
		r.total = add(&r.total, &amount)
	}
	return r
}

func (r *LockRegistry) Balance(holder AccountID) Amount {
	return r.balances[holder]
}

func (r *LockRegistry) Total() Amount {
	return r.total
}

// Holders lists every holder with an entry, sorted.
func (r *LockRegistry) Holders() []AccountID {
	holders := make([]AccountID, 0, len(r.balances))
	for h := range r.balances {
		holders = append(holders, h)
	}
	sort.Slice(holders, func(i, j int) bool { return holders[i] < holders[j] })
	return holders
}

func (r *LockRegistry) Lock(holder AccountID, amount *Amount) error {
	if amount.IsZero() {
		return ErrorInvalidAmount
	}
	current := r.balances[holder]
	balance := add(&current, amount)
	total := add(&r.total, amount)
	r.balances[holder] = balance
	r.total = total
	return nil
}

// CheckUnlock validates an unlock of amount without applying it.
func (r *LockRegistry) CheckUnlock(holder AccountID, amount *Amount) error {
	if amount.IsZero() {
		return ErrorInvalidAmount
	}
	current := r.balances[holder]
	if amount.Gt(&current) {
		return ErrorNothingToUnlock
	}
	return nil
}

func (r *LockRegistry) Unlock(holder AccountID, amount *Amount) error {
	if err := r.CheckUnlock(holder, amount); err != nil {
		return err
	}
	current := r.balances[holder]
	r.balances[holder] = sub(&current, amount)
	r.total = sub(&r.total, amount)
	return nil
}

// IsMajority reports whether holder owns strictly more than half of everything locked,
// evaluated as locked*100 > total*100/2. It fails with ErrorNothingToUnlock when nothing is
// locked at all.
func (r *LockRegistry) IsMajority(holder AccountID) (bool, error) {
	if r.total.IsZero() {
		return false, ErrorNothingToUnlock
	}
	held := r.balances[holder]
	lhs := mulDiv64(&held, 100, 1)
	rhs := mulDiv64(&r.total, 100, 2)
	return lhs.Gt(&rhs), nil
}

func (r *LockRegistry) Clone() LockRegistry {
	c := LockRegistry{
		balances: make(map[AccountID]Amount, len(r.balances)),
		total:    r.total,
	}
	for h, a := range r.balances {
		c.balances[h] = a
	}
	return c
}
