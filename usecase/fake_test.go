package usecase

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"treasury/domain"
	"treasury/domain/exchange"
	"treasury/interface/repository"
)

// memoryStore keeps tokens and treasuries in memory with the same version rule as the
// postgres repository.
type memoryStore struct {
	mu         sync.Mutex
	tokens     map[string]domain.Token
	states     map[string]*exchange.State
	versions   map[string]int64
	commits    []*repository.Commit
	failCommit bool
	// beforeCommit runs inside Commit before the version check, with the store locked
	beforeCommit func()
	tokenReads int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		tokens:   make(map[string]domain.Token),
		states:   make(map[string]*exchange.State),
		versions: make(map[string]int64),
	}
}

func (m *memoryStore) Find(symbol string) (*domain.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokenReads++
	token, ok := m.tokens[symbol]
	if !ok {
		return nil, nil
	}
	return &token, nil
}

func (m *memoryStore) FindAll() ([]domain.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]domain.Token, 0, len(m.tokens))
	for _, token := range m.tokens {
		list = append(list, token)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Symbol < list[j].Symbol })
	return list, nil
}

func (m *memoryStore) Create(token domain.Token, state *exchange.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[token.Symbol]; ok {
		return fmt.Errorf("duplicate key value violates unique constraint")
	}
	m.tokens[token.Symbol] = token
	m.states[token.Symbol] = state.Clone()
	m.versions[token.Symbol] = 1
	return nil
}

func (m *memoryStore) Version(symbol string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	version, ok := m.versions[symbol]
	if !ok {
		return 0, repository.ErrorTreasuryNotFound
	}
	return version, nil
}

func (m *memoryStore) Load(symbol string) (*exchange.State, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[symbol]
	if !ok {
		return nil, 0, repository.ErrorTreasuryNotFound
	}
	return state.Clone(), m.versions[symbol], nil
}

func (m *memoryStore) Commit(c *repository.Commit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCommit {
		return fmt.Errorf("could not serialize access")
	}
	if m.beforeCommit != nil {
		m.beforeCommit()
	}
	if m.versions[c.Symbol] != c.Version {
		return fmt.Errorf("expected 1 affected row")
	}
	m.states[c.Symbol] = c.State.Clone()
	m.versions[c.Symbol]++
	m.commits = append(m.commits, c)
	return nil
}

type memoryMemoStore struct {
	memos map[string]domain.Memo
}

func newMemoryMemoStore() *memoryMemoStore {
	return &memoryMemoStore{memos: make(map[string]domain.Memo)}
}

func (m *memoryMemoStore) Find(key string) (*domain.Memo, error) {
	memo, ok := m.memos[key]
	if !ok {
		return nil, nil
	}
	return &memo, nil
}

func (m *memoryMemoStore) put(key string, memo domain.Memorable) {
	m.memos[key] = domain.Memo{Key: key, Memo: memo.ToJson()}
}

type memoryTradeStore struct {
	trades []domain.TradeRecord
}

func (m *memoryTradeStore) FindSince(symbol string, afterTime time.Time, afterID string, limit int) ([]domain.TradeRecord, error) {
	result := make([]domain.TradeRecord, 0)
	for _, t := range m.trades {
		if t.Symbol != symbol {
			continue
		}
		if t.Time.Before(afterTime) || (t.Time.Equal(afterTime) && t.ID.String() <= afterID) {
			continue
		}
		result = append(result, t)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *memoryTradeStore) FindLatest(symbol string, limit int) ([]domain.TradeRecord, error) {
	result := make([]domain.TradeRecord, 0)
	for i := len(m.trades) - 1; i >= 0 && len(result) < limit; i-- {
		if m.trades[i].Symbol == symbol {
			result = append(result, m.trades[i])
		}
	}
	return result, nil
}

// memoryCandleStore shares its memo map with a memoryMemoStore, as the postgres repository
// writes both in one transaction.
type memoryCandleStore struct {
	memos   *memoryMemoStore
	candles map[string]domain.Candle
	upserts int
}

func newMemoryCandleStore(memos *memoryMemoStore) *memoryCandleStore {
	return &memoryCandleStore{memos: memos, candles: make(map[string]domain.Candle)}
}

func candleMapKey(symbol string, interval time.Duration, start time.Time) string {
	return fmt.Sprintf("%v/%v/%v", symbol, interval, start.Unix())
}

func (m *memoryCandleStore) Upsert(candles []*domain.Candle, memoKey string, memo domain.Memorable) error {
	m.upserts++
	for _, c := range candles {
		m.candles[candleMapKey(c.Symbol, c.Interval, c.Start)] = *c
	}
	if memo != nil {
		m.memos.put(memoKey, memo)
	}
	return nil
}

func (m *memoryCandleStore) Find(symbol string, interval time.Duration, from, to time.Time) ([]domain.Candle, error) {
	result := make([]domain.Candle, 0)
	for _, c := range m.candles {
		if c.Symbol == symbol && c.Interval == interval && !c.Start.Before(from) && c.Start.Before(to) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start.Before(result[j].Start) })
	return result, nil
}

type memoryRewardStore struct {
	snapshots []domain.RewardSnapshot
}

func (m *memoryRewardStore) Insert(snapshots []domain.RewardSnapshot) error {
	m.snapshots = append(m.snapshots, snapshots...)
	return nil
}

func (m *memoryRewardStore) FindLatest(symbol string) (*domain.RewardSnapshot, error) {
	for i := len(m.snapshots) - 1; i >= 0; i-- {
		if m.snapshots[i].Symbol == symbol {
			return &m.snapshots[i], nil
		}
	}
	return nil, nil
}

func treasuryAccount(symbol string) exchange.AccountID {
	return exchange.AccountID("SPTREASURY." + symbol)
}

func newTestInteractors() (*memoryStore, *TokenInteractor, *TreasuryInteractor) {
	store := newMemoryStore()
	tokens, treasuries := newInteractorsOn(store)
	return store, tokens, treasuries
}

// newInteractorsOn builds the interactors of one process over a store other processes may
// share.
func newInteractorsOn(store *memoryStore) (*TokenInteractor, *TreasuryInteractor) {
	tokens := NewTokenInteractor(store, store, treasuryAccount)
	treasuries := NewTreasuryInteractor(tokens, store, "SPPLATFORM")
	return tokens, treasuries
}
