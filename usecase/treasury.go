package usecase

import (
	"sync"
	"time"

	"treasury/domain"
	"treasury/domain/exchange"
	"treasury/infrastructure/logger"
	"treasury/interface/exporter"
	"treasury/interface/repository"
)

type TreasuryStore interface {
	Version(symbol string) (int64, error)
	Load(symbol string) (*exchange.State, int64, error)
	Commit(c *repository.Commit) error
}

// treasurySlot is the single writer of one token's treasury. Slots of different tokens never
// block each other.
type treasurySlot struct {
	mu      sync.Mutex
	engine  *exchange.Engine
	version int64
}

type TreasuryInteractor struct {
	tokenInteractor *TokenInteractor
	treasuryStore   TreasuryStore
	platform        exchange.AccountID

	mu    sync.Mutex
	slots map[string]*treasurySlot

	now func() time.Time
}

func NewTreasuryInteractor(tokenInteractor *TokenInteractor,
	treasuryStore TreasuryStore,
	platform exchange.AccountID) *TreasuryInteractor {
	interactor := &TreasuryInteractor{
		tokenInteractor: tokenInteractor,
		treasuryStore:   treasuryStore,
		platform:        platform,
		slots:           make(map[string]*treasurySlot),
		now:             func() time.Time { return time.Now().UTC() },
	}
	return interactor
}

func (interactor *TreasuryInteractor) slot(symbol string) *treasurySlot {
	interactor.mu.Lock()
	defer interactor.mu.Unlock()

	s, ok := interactor.slots[symbol]
	if !ok {
		s = &treasurySlot{}
		interactor.slots[symbol] = s
	}
	return s
}

// load makes sure the slot holds the engine of the stored version. Other processes commit to
// the same store, so a cached engine is reused only while its version is still the stored one.
// The slot lock must be held.
func (interactor *TreasuryInteractor) load(symbol string, s *treasurySlot) error {
	if s.engine != nil {
		version, err := interactor.treasuryStore.Version(symbol)
		if err != nil {
			logger.Errorf("🔴 reading treasury version of %v - %v", symbol, err.Error())
			return err
		}
		if version == s.version {
			return nil
		}
		logger.Debugf("🔵 treasury %v moved from version %v to %v, reloading", symbol, s.version, version)
		s.engine = nil
	}

	token, err := interactor.tokenInteractor.Find(symbol)
	if err != nil {
		return err
	}

	state, version, err := interactor.treasuryStore.Load(token.Symbol)
	if err == repository.ErrorTreasuryNotFound {
		return domain.ErrorTokenNotFound
	}
	if err != nil {
		logger.Errorf("🔴 loading treasury %v - %v", symbol, err.Error())
		return err
	}

	s.engine = exchange.NewEngine(state, token.Treasury, interactor.platform)
	s.version = version
	return nil
}

// read runs fn against the current engine of symbol while holding its slot.
func (interactor *TreasuryInteractor) read(symbol string, fn func(e *exchange.Engine, version int64) error) error {
	symbol = NormalizeSymbol(symbol)
	s := interactor.slot(symbol)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := interactor.load(symbol, s); err != nil {
		return err
	}
	return fn(s.engine, s.version)
}

// apply runs one mutation on a copy of the engine and persists its outcome. The copy replaces
// the cached engine only after the commit succeeded.
func (interactor *TreasuryInteractor) apply(symbol string, op exchange.Operation,
	fn func(e *exchange.Engine) (*exchange.Receipt, error)) (*exchange.Receipt, error) {
	symbol = NormalizeSymbol(symbol)
	s := interactor.slot(symbol)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := interactor.load(symbol, s); err != nil {
		return nil, err
	}

	log := logger.With("symbol", symbol, "op", op, "version", s.version)

	next := s.engine.Clone()
	receipt, err := fn(next)
	if err != nil {
		exporter.IncRejectionCount(op, err)
		log.Debugf("🟡 rejected - %v", err.Error())
		return nil, err
	}

	at := interactor.now()
	state := next.State()
	commit := &repository.Commit{
		Symbol:  symbol,
		Version: s.version,
		State:   state,
		Receipt: receipt,
		Trade:   domain.NewTradeRecord(symbol, receipt, state, at),
		Time:    at,
	}
	if op == exchange.OpLock || op == exchange.OpUnlock {
		commit.Holders = []exchange.AccountID{receipt.Caller}
	}

	err = interactor.treasuryStore.Commit(commit)
	if err != nil {
		// the stored treasury may have moved on; reload on next access
		s.engine = nil
		exporter.IncConflictCount(symbol)
		exporter.IncErrorCount()
		log.Errorf("🔴 commit failed - %v", err.Error())
		return nil, err
	}

	s.engine = next
	s.version++

	exporter.SetTreasuryState(symbol, state)
	if commit.Trade != nil {
		exporter.IncTradeCount(symbol, commit.Trade.Direction)
	}
	log.Infof("🔵 %v by %v committed", op, receipt.Caller)
	return receipt, nil
}

//-------------------------------------------------------------------
// Mutations

func (interactor *TreasuryInteractor) Buy(symbol string, caller exchange.AccountID, currencyIn exchange.Amount) (*exchange.Receipt, error) {
	return interactor.apply(symbol, exchange.OpBuy, func(e *exchange.Engine) (*exchange.Receipt, error) {
		return e.Buy(caller, currencyIn)
	})
}

func (interactor *TreasuryInteractor) Sell(symbol string, caller exchange.AccountID, tokensIn exchange.Amount) (*exchange.Receipt, error) {
	return interactor.apply(symbol, exchange.OpSell, func(e *exchange.Engine) (*exchange.Receipt, error) {
		return e.Sell(caller, tokensIn)
	})
}

func (interactor *TreasuryInteractor) Lock(symbol string, holder exchange.AccountID, amount exchange.Amount) (*exchange.Receipt, error) {
	return interactor.apply(symbol, exchange.OpLock, func(e *exchange.Engine) (*exchange.Receipt, error) {
		return e.Lock(holder, amount)
	})
}

func (interactor *TreasuryInteractor) Unlock(symbol string, holder exchange.AccountID, amount exchange.Amount) (*exchange.Receipt, error) {
	return interactor.apply(symbol, exchange.OpUnlock, func(e *exchange.Engine) (*exchange.Receipt, error) {
		return e.Unlock(holder, amount)
	})
}

func (interactor *TreasuryInteractor) ClaimMajority(symbol string, holder exchange.AccountID) (*exchange.Receipt, error) {
	return interactor.apply(symbol, exchange.OpClaimMajority, func(e *exchange.Engine) (*exchange.Receipt, error) {
		return e.ClaimMajority(holder)
	})
}

func (interactor *TreasuryInteractor) WithdrawFees(symbol string, caller exchange.AccountID, amount exchange.Amount) (*exchange.Receipt, error) {
	return interactor.apply(symbol, exchange.OpWithdrawFees, func(e *exchange.Engine) (*exchange.Receipt, error) {
		return e.WithdrawFees(caller, amount)
	})
}

//-------------------------------------------------------------------
// Queries

func (interactor *TreasuryInteractor) QuoteBuy(symbol string, currencyIn exchange.Amount) (exchange.BuyQuote, error) {
	var quote exchange.BuyQuote
	err := interactor.read(symbol, func(e *exchange.Engine, _ int64) error {
		var err error
		quote, err = e.QuoteBuy(currencyIn)
		return err
	})
	return quote, err
}

func (interactor *TreasuryInteractor) QuoteSell(symbol string, tokensIn exchange.Amount) (exchange.SellQuote, error) {
	var quote exchange.SellQuote
	err := interactor.read(symbol, func(e *exchange.Engine, _ int64) error {
		var err error
		quote, err = e.QuoteSell(tokensIn)
		return err
	})
	return quote, err
}

// State returns a copy of the current state of symbol's treasury.
func (interactor *TreasuryInteractor) State(symbol string) (*exchange.State, error) {
	var state *exchange.State
	err := interactor.read(symbol, func(e *exchange.Engine, _ int64) error {
		state = e.State()
		return nil
	})
	return state, err
}

func (interactor *TreasuryInteractor) LockedBalance(symbol string, holder exchange.AccountID) (exchange.Amount, error) {
	var amount exchange.Amount
	err := interactor.read(symbol, func(e *exchange.Engine, _ int64) error {
		amount = e.LockedBalance(holder)
		return nil
	})
	return amount, err
}

// Snapshot collects the whole query surface of symbol's treasury at one version.
func (interactor *TreasuryInteractor) Snapshot(symbol string) (*domain.TreasurySnapshot, error) {
	var snapshot *domain.TreasurySnapshot
	err := interactor.read(symbol, func(e *exchange.Engine, version int64) error {
		state := e.State()
		holder, _ := e.MajorityHolder()
		snapshot = &domain.TreasurySnapshot{
			Symbol:             NormalizeSymbol(symbol),
			Version:            version,
			Treasury:           e.TreasuryAccount(),
			Platform:           e.PlatformAccount(),
			TokenBalance:       e.TokenBalance(),
			CurrencyBalance:    e.CurrencyBalance(),
			VirtualCurrency:    state.VirtualCurrencyOffset,
			FeePool:            e.FeePool(),
			TotalSwapFeesSent:  e.TotalSwapFeesSent(),
			TotalLocked:        e.TotalLocked(),
			MajorityHolder:     holder,
			LastWithdrawAmount: e.LastWithdrawAmount(),
			Threshold:          e.Threshold(),
			CanUnlock:          e.CanUnlock(),
			Price:              domain.SpotPrice(state).String(),
		}
		return nil
	})
	return snapshot, err
}
