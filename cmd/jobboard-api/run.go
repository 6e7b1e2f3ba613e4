package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/washworks/jobboard/internal/api_server"
	"github.com/washworks/jobboard/internal/config"
	"github.com/washworks/jobboard/internal/events"
	"github.com/washworks/jobboard/internal/store"
	"github.com/washworks/jobboard/pkg/log"
	"github.com/washworks/jobboard/pkg/metrics"
	"github.com/washworks/jobboard/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the jobboard api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		logLvl, err := zap.ParseAtomicLevel(cfg.Service.LogLevel)
		if err != nil {
			logLvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}

		logger := log.InitLog(logLvl)
		defer func() { _ = logger.Sync() }()

		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if cfg.Service.MigrationFolder != "" {
			if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
				zap.S().Fatalw("running migrations", "error", err)
			}
		} else {
			if err := s.InitialMigration(context.Background()); err != nil {
				zap.S().Fatalw("running initial migration", "error", err)
			}
		}

		eventWriter := events.NewEventProducer(&events.StdoutWriter{})
		defer func() { _ = eventWriter.Close() }()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, s, listener, eventWriter)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("error running server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating metrics listener", "error", err)
			}

			collector := metrics.NewBoardCollector(boardCounts(ctx, s))
			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener, collector)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("error running metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

// boardCounts pulls the active jobs per status on every scrape.
func boardCounts(ctx context.Context, s store.Store) func() map[string]int {
	return func() map[string]int {
		counts := make(map[string]int)
		jobs, err := s.Job().List(ctx, store.NewJobQueryFilter().ByArchived(false), nil)
		if err != nil {
			zap.S().Named("metrics_server").Errorw("failed to count jobs per status", "error", err)
			return counts
		}
		for _, j := range jobs {
			counts[j.Status]++
		}
		return counts
	}
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
