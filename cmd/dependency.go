package cmd

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"treasury/domain/config"
	"treasury/infrastructure/logger"
	"treasury/infrastructure/dbhandler"
	"treasury/interface/exporter"
	"treasury/interface/repository"
	"treasury/usecase"
)

func defaultDependencyInject() {
	var err error
	dbURI := config.GetDbUri()
	dbPool, err = sql.Open("postgres", dbURI)
	if err != nil {
		logger.Fatalf("🔴 opening database - %v", err.Error())
	}
	dbPool.SetMaxOpenConns(20)
	dbPool.SetMaxIdleConns(5)
	dbPool.SetConnMaxIdleTime(1 * time.Minute)
	dbPool.SetConnMaxLifetime(4 * time.Hour)

	dbHandler := dbhandler.DBHandler{DB: dbPool, MaxRetry: config.GetMaxRetry()}

	exporter.Init()

	schemaRepository = repository.NewSchemaRepository(dbHandler)
	tokenRepository := repository.NewTokenRepository(dbHandler)
	treasuryRepository := repository.NewTreasuryRepository(dbHandler)
	tradeRepository := repository.NewTradeRepository(dbHandler)
	candleRepository := repository.NewCandleRepository(dbHandler)
	rewardRepository := repository.NewRewardRepository(dbHandler)
	memoRepository := repository.NewMemoRepository(dbHandler)

	memoInteractor = usecase.NewMemoInteractor(memoRepository)
	tokenInteractor = usecase.NewTokenInteractor(tokenRepository, treasuryRepository, config.TreasuryAccount)
	treasuryInteractor = usecase.NewTreasuryInteractor(tokenInteractor, treasuryRepository, config.GetPlatformWallet())
	candleInteractor = usecase.NewCandleInteractor(memoInteractor, tradeRepository, candleRepository, config.GetCandleIntervals())
	rewardInteractor = usecase.NewRewardInteractor(tokenInteractor, treasuryInteractor, rewardRepository)
}

var dbPool *sql.DB
var schemaRepository *repository.SchemaRepository
var memoInteractor *usecase.MemoInteractor
var tokenInteractor *usecase.TokenInteractor
var treasuryInteractor *usecase.TreasuryInteractor
var candleInteractor *usecase.CandleInteractor
var rewardInteractor *usecase.RewardInteractor
