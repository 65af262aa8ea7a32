package usecase

import (
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	lru "github.com/hashicorp/golang-lru"

	"treasury/domain"
	"treasury/domain/exchange"
	"treasury/infrastructure/logger"
)

const tokenCacheSize = 256

type TokenStore interface {
	Find(symbol string) (*domain.Token, error)
	FindAll() ([]domain.Token, error)
}

type TreasuryCreator interface {
	Create(token domain.Token, state *exchange.State) error
}

type TokenInteractor struct {
	tokenStore      TokenStore
	treasuryCreator TreasuryCreator
	treasuryAccount func(symbol string) exchange.AccountID
	cache           *lru.Cache
}

func NewTokenInteractor(tokenStore TokenStore,
	treasuryCreator TreasuryCreator,
	treasuryAccount func(symbol string) exchange.AccountID) *TokenInteractor {
	cache, err := lru.New(tokenCacheSize)
	if err != nil {
		logger.Fatalf("🔴 creating token cache - %v", err.Error())
	}
	interactor := &TokenInteractor{
		tokenStore:      tokenStore,
		treasuryCreator: treasuryCreator,
		treasuryAccount: treasuryAccount,
		cache:           cache,
	}
	return interactor
}

// NormalizeSymbol is the canonical form symbols are stored and looked up in.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func validateLaunch(symbol, name string, creator exchange.AccountID) error {
	if !govalidator.IsAlphanumeric(symbol) || !govalidator.StringLength(symbol, "2", "12") {
		return domain.ErrorInvalidSymbol
	}
	if !govalidator.StringLength(strings.TrimSpace(name), "1", "64") {
		return domain.ErrorInvalidName
	}
	if creator == "" {
		return exchange.ErrorInvalidAccount
	}
	return nil
}

// Launch registers a new token and opens its treasury with the full supply and the initial
// virtual currency.
func (interactor *TokenInteractor) Launch(symbol, name string, creator exchange.AccountID) (*domain.Token, error) {
	symbol = NormalizeSymbol(symbol)
	if err := validateLaunch(symbol, name, creator); err != nil {
		return nil, err
	}

	existing, err := interactor.Find(symbol)
	if err != nil && err != domain.ErrorTokenNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrorTokenExists
	}

	token := domain.Token{
		Symbol:     symbol,
		Name:       strings.TrimSpace(name),
		Creator:    creator,
		Treasury:   interactor.treasuryAccount(symbol),
		LaunchTime: time.Now().UTC(),
	}
	err = interactor.treasuryCreator.Create(token, exchange.NewState())
	if err != nil {
		logger.Errorf("🔴 launching token %v - %v", symbol, err.Error())
		return nil, err
	}

	interactor.cache.Add(symbol, &token)
	logger.Infof("🔵 token %v launched by %v, treasury %v", symbol, creator, token.Treasury)
	return &token, nil
}

// Find returns the token of symbol or ErrorTokenNotFound. Tokens never change once launched,
// so found tokens are cached.
func (interactor *TokenInteractor) Find(symbol string) (*domain.Token, error) {
	symbol = NormalizeSymbol(symbol)
	if cached, ok := interactor.cache.Get(symbol); ok {
		return cached.(*domain.Token), nil
	}

	token, err := interactor.tokenStore.Find(symbol)
	if err != nil {
		logger.Errorf("🔴 loading token %v - %v", symbol, err.Error())
		return nil, err
	}
	if token == nil {
		return nil, domain.ErrorTokenNotFound
	}

	interactor.cache.Add(symbol, token)
	return token, nil
}

func (interactor *TokenInteractor) FindAll() ([]domain.Token, error) {
	tokens, err := interactor.tokenStore.FindAll()
	if err != nil {
		logger.Errorf("🔴 loading tokens - %v", err.Error())
		return nil, err
	}
	return tokens, nil
}
