package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"treasury/domain/exchange"
	"treasury/infrastructure/logger"
)

var (
	ErrorNoPlatformWallet = fmt.Errorf("no platform wallet is defined")
	ErrorNoTreasuryPrefix = fmt.Errorf("no treasury prefix is defined")

	ErrorInvalidCandleIntervals   = fmt.Errorf("invalid candle intervals")
	ErrorInvalidAggregateInterval = fmt.Errorf("invalid time interval for aggregate process")
	ErrorInvalidRewardInterval    = fmt.Errorf("invalid time interval for reward process")
	ErrorInvalidMaxRetry          = fmt.Errorf("max_db_retry must be positive")
)

var (
	TrailingSlashRE = regexp.MustCompile("/+$")
)

var (
	dbUri string

	platformWallet exchange.AccountID
	treasuryPrefix string

	metricsAddress string
	apiAddress     string
	logLevel       string
	maxRetry       int

	candleIntervals   []time.Duration
	aggregateInterval time.Duration
	rewardInterval    time.Duration
)

func init() {
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("metrics_address", ":9090")
	viper.SetDefault("api_address", ":8080")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("max_db_retry", 5)
	viper.SetDefault("candle_intervals", "1m,5m,1h,24h")
	viper.SetDefault("aggregate_interval", "30s")
	viper.SetDefault("reward_interval", "10m")
}

// ReadConfig loads the configuration file at filePath. Environment variables override the
// file, and a .env file next to the working directory is loaded first when present.
func ReadConfig(filePath string) {
	if err := godotenv.Load(); err == nil {
		logger.Infof("🔵 Loaded .env file")
	}

	viper.SetConfigFile(filePath)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnf("🟡 Failed reading config file: %v", err.Error())
	}

	err := initializeVariables()
	if err != nil {
		logger.Fatalf("🔴 Configuration error - %v", err.Error())
	}
}

// This method processes the configuration parameters and keeps the processed values
// in some variables for later accesses rapidly.
func initializeVariables() error {
	var err error

	// Database stuff
	dbUri = TrailingSlashRE.ReplaceAllString(viper.GetString("service_db_uri"), "")

	// Treasury stuff
	platformWallet = exchange.AccountID(strings.TrimSpace(viper.GetString("platform_wallet")))
	if platformWallet == "" {
		return ErrorNoPlatformWallet
	}
	treasuryPrefix = strings.TrimSpace(viper.GetString("treasury_prefix"))
	if treasuryPrefix == "" {
		return ErrorNoTreasuryPrefix
	}

	// Service stuff
	metricsAddress = strings.TrimSpace(viper.GetString("metrics_address"))
	apiAddress = strings.TrimSpace(viper.GetString("api_address"))
	logLevel = strings.TrimSpace(strings.ToLower(viper.GetString("log_level")))
	maxRetry = viper.GetInt("max_db_retry")
	if maxRetry <= 0 {
		return ErrorInvalidMaxRetry
	}

	//---------------------------------------------------------------
	// candle intervals
	candleIntervals, err = ParseIntervals(viper.GetString("candle_intervals"))
	if err != nil {
		return err
	}

	//---------------------------------------------------------------
	// aggregate interval
	strValue := viper.GetString("aggregate_interval")
	aggregateInterval, err = time.ParseDuration(strValue)
	if err != nil || aggregateInterval <= 0 {
		return ErrorInvalidAggregateInterval
	}

	//---------------------------------------------------------------
	// reward interval
	strValue = viper.GetString("reward_interval")
	rewardInterval, err = time.ParseDuration(strValue)
	if err != nil || rewardInterval <= 0 {
		return ErrorInvalidRewardInterval
	}

	return nil
}

// ParseIntervals reads a comma separated list of positive durations.
func ParseIntervals(value string) ([]time.Duration, error) {
	parts := strings.Split(value, ",")
	res := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.ParseDuration(part)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrorInvalidCandleIntervals, part)
		}
		res = append(res, d)
	}
	if len(res) == 0 {
		return nil, ErrorInvalidCandleIntervals
	}
	return res, nil
}

//-------------------------------------------------------------------
// Normal configuration values

func GetDbUri() string {
	return dbUri
}

func GetPlatformWallet() exchange.AccountID {
	return platformWallet
}

func GetMetricsAddress() string {
	return metricsAddress
}

func GetApiAddress() string {
	return apiAddress
}

func GetLogLevel() string {
	return logLevel
}

func GetMaxRetry() int {
	return maxRetry
}

func GetCandleIntervals() []time.Duration {
	return candleIntervals
}

func GetAggregateInterval() time.Duration {
	return aggregateInterval
}

func GetRewardInterval() time.Duration {
	return rewardInterval
}

// -------------------------------------------------------------------
// Evaluating values

// TreasuryAccount derives the custody account of the treasury of symbol.
func TreasuryAccount(symbol string) exchange.AccountID {
	return exchange.AccountID(treasuryPrefix + "." + strings.ToLower(symbol) + "-treasury")
}
