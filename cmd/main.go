package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/delfos/internal/adapters/artifact"
	app "github.com/okian/delfos/internal/app"
	"github.com/okian/delfos/internal/config"
	"github.com/okian/delfos/pkg/logger"
	"github.com/okian/delfos/pkg/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	debug := flag.Bool("debug", false, "Enable debug logging (per-table counts and skip reasons)")
	flag.Parse()

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		loggerInstance.Error(ctx, "failed to load config", logger.Error(err))
		return 1
	}
	if *debug {
		cfg.Debug = true
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.EffectiveLogLevel()); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := derive(ctx, cfg, loggerInstance); err != nil {
		loggerInstance.Error(ctx, "derivation failed", logger.Error(err))
		return 1
	}
	return 0
}

// derive runs the pipeline and writes the artifact. Nothing is written when
// the run fails.
func derive(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	classifier, err := cfg.Classifier()
	if err != nil {
		return err
	}
	professions, err := cfg.ProfessionTable()
	if err != nil {
		return err
	}
	log.Info(ctx, "derivation configured",
		logger.Int("rules", classifier.Len()),
		logger.Int("professions", len(professions)),
		logger.Any("tables", cfg.Tables),
	)

	svc := app.New(
		app.WithLogger(log),
		app.WithSourceDir(cfg.SourceDir),
		app.WithTables(cfg.Tables),
		app.WithClassifier(classifier),
		app.WithProfessions(professions),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithShardCount(cfg.ShardCount),
	)

	art, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := artifact.WriteFile(cfg.OutputFile, art); err != nil {
		return err
	}
	metrics.RecordStageDuration("write", time.Since(start).Seconds())
	metrics.MarkSuccess(float64(time.Now().Unix()))

	log.Info(ctx, "artifact written",
		logger.String("path", cfg.OutputFile),
		logger.Int("professions", len(art.Professions)),
	)

	// The artifact is already in place; a metrics failure only warns.
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn(ctx, "failed to write metrics textfile", logger.String("path", cfg.MetricsFile), logger.Error(err))
		}
	}
	return nil
}
