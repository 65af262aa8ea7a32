package exchange

// Engine owns the state of one treasury and is its only writer. It is not safe for concurrent
// use; the host serializes operations per treasury.
type Engine struct {
	state    *State
	treasury AccountID
	platform AccountID
}

// NewEngine wraps state. treasury is the custody account of this treasury, platform the wallet
// that receives swap fees.
func NewEngine(state *State, treasury, platform AccountID) *Engine {
	return &Engine{
		state:    state,
		treasury: treasury,
		platform: platform,
	}
}

func (e *Engine) Clone() *Engine {
	return &Engine{
		state:    e.state.Clone(),
		treasury: e.treasury,
		platform: e.platform,
	}
}

// State returns a copy of the current state.
func (e *Engine) State() *State {
	return e.state.Clone()
}

func (e *Engine) TreasuryAccount() AccountID { return e.treasury }
func (e *Engine) PlatformAccount() AccountID { return e.platform }

//-------------------------------------------------------------------
// Mutations

func (e *Engine) Buy(caller AccountID, currencyIn Amount) (*Receipt, error) {
	if caller == "" {
		return nil, ErrorInvalidAccount
	}
	q, err := QuoteBuy(e.state, &currencyIn)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{
		Op:     OpBuy,
		Caller: caller,
		Amount: q.TokensOut,
		Transfers: []Transfer{
			{Asset: AssetCurrency, Amount: q.Fee.Swap, From: caller, To: e.platform},
			{Asset: AssetCurrency, Amount: q.NetCurrencyIn, From: caller, To: e.treasury},
			{Asset: AssetToken, Amount: q.TokensOut, From: e.treasury, To: caller},
		},
		Buy: &q,
	}

	// every new value is computed before the first assignment
	s := e.state
	currency := add(&s.CurrencyBalance, &q.NetCurrencyIn)
	pool := add(&s.FeePool, &q.Fee.Majority)
	swapSent := add(&s.TotalSwapFeesSent, &q.Fee.Swap)

	s.CurrencyBalance = currency
	s.FeePool = pool
	s.TokenBalance = q.NewTokenBalance
	s.TotalSwapFeesSent = swapSent
	return receipt, nil
}

func (e *Engine) Sell(caller AccountID, tokensIn Amount) (*Receipt, error) {
	if caller == "" {
		return nil, ErrorInvalidAccount
	}
	q, err := QuoteSell(e.state, &tokensIn)
	if err != nil {
		return nil, err
	}

	receipt := &Receipt{
		Op:     OpSell,
		Caller: caller,
		Amount: q.CurrencyOut,
		Transfers: []Transfer{
			{Asset: AssetToken, Amount: tokensIn, From: caller, To: e.treasury},
			{Asset: AssetCurrency, Amount: q.CurrencyOut, From: e.treasury, To: caller},
			{Asset: AssetCurrency, Amount: q.Fee.Swap, From: e.treasury, To: e.platform},
		},
		Sell: &q,
	}

	s := e.state
	debit := add(&q.CurrencyOut, &q.Fee.Gross)
	currency := sub(&s.CurrencyBalance, &debit)
	pool := add(&s.FeePool, &q.Fee.Majority)
	swapSent := add(&s.TotalSwapFeesSent, &q.Fee.Swap)

	s.CurrencyBalance = currency
	s.FeePool = pool
	s.TokenBalance = q.NewTokenBalance
	s.TotalSwapFeesSent = swapSent
	return receipt, nil
}

func (e *Engine) WithdrawFees(caller AccountID, amount Amount) (*Receipt, error) {
	s := e.state
	if caller == "" || s.MajorityHolder == "" || caller != s.MajorityHolder {
		return nil, ErrorUnauthorized
	}
	if amount.IsZero() {
		return nil, ErrorInvalidAmount
	}
	if amount.Gt(&s.FeePool) {
		return nil, ErrorInsufficientPool
	}

	receipt := &Receipt{
		Op:     OpWithdrawFees,
		Caller: caller,
		Amount: amount,
		Transfers: []Transfer{
			{Asset: AssetCurrency, Amount: amount, From: e.treasury, To: caller},
		},
	}

	s.FeePool = sub(&s.FeePool, &amount)
	RatchetWithdraw(s, &amount)
	return receipt, nil
}

// Lock records amount as locked by holder. The receipt carries the custody transfer the host
// executes together with the lock. Nobody can hold more than MaxSupply, so larger amounts are
// rejected.
func (e *Engine) Lock(holder AccountID, amount Amount) (*Receipt, error) {
	if holder == "" {
		return nil, ErrorInvalidAccount
	}
	if amount.Gt(&MaxSupply) {
		return nil, ErrorInvalidAmount
	}
	if err := e.state.Locks.Lock(holder, &amount); err != nil {
		return nil, err
	}
	return &Receipt{
		Op:     OpLock,
		Caller: holder,
		Amount: amount,
		Transfers: []Transfer{
			{Asset: AssetToken, Amount: amount, From: holder, To: e.treasury},
		},
	}, nil
}

func (e *Engine) Unlock(holder AccountID, amount Amount) (*Receipt, error) {
	if holder == "" {
		return nil, ErrorInvalidAccount
	}
	s := e.state
	if err := s.Locks.CheckUnlock(holder, &amount); err != nil {
		return nil, err
	}
	if !CanUnlock(s) {
		return nil, ErrorFeePoolTooLow
	}
	if err := s.Locks.Unlock(holder, &amount); err != nil {
		return nil, err
	}
	return &Receipt{
		Op:     OpUnlock,
		Caller: holder,
		Amount: amount,
		Transfers: []Transfer{
			{Asset: AssetToken, Amount: amount, From: e.treasury, To: holder},
		},
	}, nil
}

// ClaimMajority makes holder the majority holder if it owns strictly more than half of all
// locked tokens right now. The title is not re-checked later; it only moves on the next
// successful claim.
func (e *Engine) ClaimMajority(holder AccountID) (*Receipt, error) {
	if holder == "" {
		return nil, ErrorInvalidAccount
	}
	ok, err := e.state.Locks.IsMajority(holder)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrorNotMajority
	}
	e.state.MajorityHolder = holder
	return &Receipt{
		Op:     OpClaimMajority,
		Caller: holder,
		Amount: e.state.Locks.Balance(holder),
	}, nil
}

//-------------------------------------------------------------------
// Queries

func (e *Engine) CurrencyBalance() Amount    { return e.state.CurrencyBalance }
func (e *Engine) FeePool() Amount            { return e.state.FeePool }
func (e *Engine) TokenBalance() Amount       { return e.state.TokenBalance }
func (e *Engine) TotalLocked() Amount        { return e.state.Locks.Total() }
func (e *Engine) LastWithdrawAmount() Amount { return e.state.LastWithdrawAmount }
func (e *Engine) TotalSwapFeesSent() Amount  { return e.state.TotalSwapFeesSent }
func (e *Engine) Threshold() Amount          { return EffectiveThreshold(e.state) }
func (e *Engine) CanUnlock() bool            { return CanUnlock(e.state) }

func (e *Engine) LockedBalance(holder AccountID) Amount {
	return e.state.Locks.Balance(holder)
}

// MajorityHolder returns the current majority holder, if any.
func (e *Engine) MajorityHolder() (AccountID, bool) {
	return e.state.MajorityHolder, e.state.MajorityHolder != ""
}

func (e *Engine) QuoteBuy(currencyIn Amount) (BuyQuote, error) {
	return QuoteBuy(e.state, &currencyIn)
}

func (e *Engine) QuoteSell(tokensIn Amount) (SellQuote, error) {
	return QuoteSell(e.state, &tokensIn)
}
