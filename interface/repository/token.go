package repository

import (
	"treasury/domain"

	"github.com/behrang/sqlbatch"
)

const (
	sqlTokenInsert = `
	insert into tokens (
			symbol, name, creator, treasury, launch_time
		)
		values (
			$1, $2, $3, $4, $5
		)
`

	sqlTokenFind = `
	select
		symbol, name, creator, treasury, launch_time
	from tokens
	where symbol = $1
`

	sqlTokenFindAll = `
	select
		symbol, name, creator, treasury, launch_time
	from tokens
	order by launch_time, symbol
`
)

type TokenRepository struct {
	batchHandler BatchHandler
}

func NewTokenRepository(db BatchHandler) *TokenRepository {
	return &TokenRepository{batchHandler: db}
}

func readAllTokens(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	r := domain.Token{}
	err := scan(
		&r.Symbol, &r.Name, &r.Creator, &r.Treasury, &r.LaunchTime,
	)
	list := memo.([]domain.Token)
	list = append(list, r)
	return list, err
}

// Find returns the token of symbol, or nil if it was never launched.
func (repo *TokenRepository) Find(symbol string) (*domain.Token, error) {
	results, err := repo.batchHandler.Batch(&BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query:   sqlTokenFind,
			Args:    []interface{}{symbol},
			Init:    make([]domain.Token, 0, 1),
			ReadAll: readAllTokens,
		},
	})
	if err != nil {
		return nil, err
	}
	list, _ := results[0].([]domain.Token)
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (repo *TokenRepository) FindAll() ([]domain.Token, error) {
	results, err := repo.batchHandler.Batch(&BatchOptionNormalReadOnly, []sqlbatch.Command{
		{
			Query:   sqlTokenFindAll,
			Args:    []interface{}{},
			Init:    make([]domain.Token, 0),
			ReadAll: readAllTokens,
		},
	})
	if err != nil {
		return nil, err
	}
	result, _ := results[0].([]domain.Token)
	return result, nil
}
