package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"treasury/domain/config"
	"treasury/infrastructure/logger"
	"treasury/interface/api"
	"treasury/interface/exporter"
)

var pidFile string

// quit stops the scheduled jobs.
var quit = make(chan bool)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Starts the treasury service",
	Long:  `Starts candle aggregation, reward snapshots and the query API. To stop it, run 'stop' command.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("start called.")

		defaultDependencyInject()

		if err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
			logger.Warnf("🟡 writing pid file %v - %v", pidFile, err.Error())
		}
		defer os.Remove(pidFile)

		handler := api.NewHandler(tokenInteractor, treasuryInteractor, candleInteractor, rewardInteractor)
		apiServer := serve(config.GetApiAddress(), handler.Router())

		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsServer := serve(config.GetMetricsAddress(), metricsMux)

		aggregateTicker := schedule(aggregate, config.GetAggregateInterval(), quit)
		rewardTicker := schedule(snapshotRewards, config.GetRewardInterval(), quit)

		signal.Ignore()
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		s := <-stop
		logger.Infof("Got signal '%v', stopping", s)

		aggregateTicker.Stop()
		rewardTicker.Stop()
		close(quit)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		apiServer.Shutdown(ctx)
		metricsServer.Shutdown(ctx)
		dbPool.Close()
	},
}

func serve(address string, handler http.Handler) *http.Server {
	server := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("🔵 listening on %v", address)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("🔴 serving on %v - %v", address, err.Error())
		}
	}()
	return server
}

func schedule(task func(), interval time.Duration, done chan bool) *time.Ticker {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {

			case <-ticker.C:
				ticker.Stop()
				task()
				ticker.Reset(interval)

			case <-done:
				return
			}
		}
	}()
	return ticker
}

func aggregate() {
	tokens, err := tokenInteractor.FindAll()
	if err != nil {
		logger.Errorf("🔴 No candle is aggregated due to error: %v", err.Error())
		exporter.IncErrorCount()
		return
	}

	for _, token := range tokens {
		n, err := candleInteractor.Aggregate(token.Symbol)
		if err != nil {
			exporter.IncErrorCount()
			continue
		}
		if n > 0 {
			logger.Infof("🔵 %v trades of %v folded into candles", n, token.Symbol)
		}
	}
}

func snapshotRewards() {
	snapshots, err := rewardInteractor.Snapshot()
	if err != nil {
		logger.Errorf("🔴 No reward snapshot is stored due to error: %v", err.Error())
		exporter.IncErrorCount()
		return
	}
	logger.Debugf("🔵 %v reward snapshots stored", len(snapshots))
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVar(&pidFile, "pid-file", "treasury.pid", "file the process id is written to")
}
