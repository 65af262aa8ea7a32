package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"treasury/domain"
	"treasury/infrastructure/logger"
	"treasury/interface/exporter"
)

type RewardStore interface {
	Insert(snapshots []domain.RewardSnapshot) error
	FindLatest(symbol string) (*domain.RewardSnapshot, error)
}

type RewardInteractor struct {
	tokenInteractor    *TokenInteractor
	treasuryInteractor *TreasuryInteractor
	rewardStore        RewardStore
}

func NewRewardInteractor(tokenInteractor *TokenInteractor,
	treasuryInteractor *TreasuryInteractor,
	rewardStore RewardStore) *RewardInteractor {
	interactor := &RewardInteractor{
		tokenInteractor:    tokenInteractor,
		treasuryInteractor: treasuryInteractor,
		rewardStore:        rewardStore,
	}
	return interactor
}

// Take reads the fee counters of symbol and the locked share of its majority holder.
func (interactor *RewardInteractor) Take(symbol string, at time.Time) (*domain.RewardSnapshot, error) {
	state, err := interactor.treasuryInteractor.State(symbol)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.RewardSnapshot{
		Symbol:            NormalizeSymbol(symbol),
		FeePool:           state.FeePool,
		TotalSwapFeesSent: state.TotalSwapFeesSent,
		MajorityHolder:    state.MajorityHolder,
		TotalLocked:       state.Locks.Total(),
		HolderShare:       decimal.Zero,
		Time:              at,
	}
	if state.MajorityHolder != "" {
		snapshot.HolderLocked = state.Locks.Balance(state.MajorityHolder)
	}
	if !snapshot.TotalLocked.IsZero() {
		held := decimal.NewFromBigInt(snapshot.HolderLocked.ToBig(), 0)
		total := decimal.NewFromBigInt(snapshot.TotalLocked.ToBig(), 0)
		snapshot.HolderShare = held.DivRound(total, 8)
	}

	exporter.SetTreasuryState(snapshot.Symbol, state)
	return snapshot, nil
}

// Snapshot records a reward snapshot of every launched token.
func (interactor *RewardInteractor) Snapshot() ([]domain.RewardSnapshot, error) {
	tokens, err := interactor.tokenInteractor.FindAll()
	if err != nil {
		return nil, err
	}

	at := time.Now().UTC()
	snapshots := make([]domain.RewardSnapshot, 0, len(tokens))
	for _, token := range tokens {
		snapshot, err := interactor.Take(token.Symbol, at)
		if err != nil {
			logger.Errorf("🔴 taking reward snapshot of %v - %v", token.Symbol, err.Error())
			exporter.IncErrorCount()
			continue
		}
		snapshots = append(snapshots, *snapshot)
	}

	err = interactor.rewardStore.Insert(snapshots)
	if err != nil {
		logger.Errorf("🔴 storing reward snapshots - %v", err.Error())
		return nil, err
	}
	return snapshots, nil
}

func (interactor *RewardInteractor) FindLatest(symbol string) (*domain.RewardSnapshot, error) {
	return interactor.rewardStore.FindLatest(NormalizeSymbol(symbol))
}
