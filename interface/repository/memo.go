package repository

import (
	"treasury/domain"

	"github.com/behrang/sqlbatch"
)

const (
	sqlMemoUpsert = `
	insert into memos as c (
			key, memo
		)
		values (
			$1, $2::jsonb
		)
	on conflict (key) do
		update set
			memo = $2::jsonb
`

	sqlMemoFind = `
	select
		key, memo
	from memos
	where key = $1
`
)

type MemoRepository struct {
	batchHandler BatchHandler
}

func NewMemoRepository(db BatchHandler) *MemoRepository {
	return &MemoRepository{batchHandler: db}
}

func readAllMemos(all interface{}, scan func(...interface{}) error) (interface{}, error) {
	r := domain.Memo{}
	var jstr []byte
	err := scan(
		&r.Key, &jstr,
	)
	if err == nil {
		r.Memo = string(jstr)
	}

	list := all.([]domain.Memo)
	list = append(list, r)
	return list, err
}

// Find returns the memo stored under key, or nil if there is none.
func (repo *MemoRepository) Find(key string) (*domain.Memo, error) {
	results, err := repo.batchHandler.Batch(&BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query:   sqlMemoFind,
			Args:    []interface{}{key},
			Init:    make([]domain.Memo, 0, 1),
			ReadAll: readAllMemos,
		},
	})
	if err != nil {
		return nil, err
	}
	list, _ := results[0].([]domain.Memo)
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}
