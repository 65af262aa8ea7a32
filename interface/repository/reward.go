package repository

import (
	"database/sql"

	"treasury/domain"
	"treasury/domain/exchange"

	"github.com/behrang/sqlbatch"
)

const (
	sqlRewardInsert = `
	insert into reward_snapshots (
			symbol, fee_pool, total_swap_fees_sent, majority_holder, holder_locked, total_locked, holder_share, time
		)
		values (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
`

	sqlRewardFindLatest = `
	select
		symbol, fee_pool, total_swap_fees_sent, majority_holder, holder_locked, total_locked, holder_share, time
	from reward_snapshots
	where symbol = $1
	order by time desc
	limit 1
`
)

type RewardRepository struct {
	batchHandler BatchHandler
}

func NewRewardRepository(db BatchHandler) *RewardRepository {
	return &RewardRepository{batchHandler: db}
}

func readAllRewards(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	r := domain.RewardSnapshot{}
	var holder sql.NullString
	err := scan(
		&r.Symbol, &r.FeePool, &r.TotalSwapFeesSent, &holder, &r.HolderLocked, &r.TotalLocked,
		&r.HolderShare, &r.Time,
	)
	if holder.Valid {
		r.MajorityHolder = exchange.AccountID(holder.String)
	}
	list := memo.([]domain.RewardSnapshot)
	list = append(list, r)
	return list, err
}

func (repo *RewardRepository) Insert(snapshots []domain.RewardSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	commands := make([]sqlbatch.Command, 0, len(snapshots))
	for i := range snapshots {
		s := &snapshots[i]
		commands = append(commands, sqlbatch.Command{
			Query: sqlRewardInsert,
			Args: []interface{}{
				s.Symbol, &s.FeePool, &s.TotalSwapFeesSent, nullableAccount(s.MajorityHolder),
				&s.HolderLocked, &s.TotalLocked, s.HolderShare, s.Time,
			},
			Affect: 1,
		})
	}
	_, err := repo.batchHandler.Batch(&BatchOptionNormal, commands)
	return err
}

// FindLatest returns the newest snapshot of symbol, or nil if none was taken.
func (repo *RewardRepository) FindLatest(symbol string) (*domain.RewardSnapshot, error) {
	results, err := repo.batchHandler.Batch(&BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query:   sqlRewardFindLatest,
			Args:    []interface{}{symbol},
			Init:    make([]domain.RewardSnapshot, 0, 1),
			ReadAll: readAllRewards,
		},
	})
	if err != nil {
		return nil, err
	}
	list, _ := results[0].([]domain.RewardSnapshot)
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}
