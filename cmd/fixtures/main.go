package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/delfos/internal/fixtures"
	"github.com/okian/delfos/pkg/logger"
)

func main() {
	var (
		generateDir = flag.String("generate", "", "Directory to write the synthetic source tables into")
		seed        = flag.Uint64("seed", fixtures.DefaultSeed, "Seed for generated values")
		ragged      = flag.Int("ragged", fixtures.DefaultRaggedEvery, "Truncate every Nth row (0 disables)")
		nonNumeric  = flag.Int("non-numeric", fixtures.DefaultNonNumericEvery, "Write n/a as the value of every Nth row (0 disables)")
		verifyFile  = flag.String("verify", "", "Artifact file to check for consistency")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help || (*generateDir == "" && *verifyFile == "") {
		fixtures.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Get()

	if *generateDir != "" {
		cfg := &fixtures.Config{
			Dir:             *generateDir,
			Seed:            *seed,
			RaggedEvery:     *ragged,
			NonNumericEvery: *nonNumeric,
		}
		if _, err := fixtures.Generate(ctx, cfg); err != nil {
			log.Error(ctx, "generation failed", logger.Error(err))
			stop()
			os.Exit(1)
		}
	}

	if *verifyFile != "" {
		if _, err := fixtures.VerifyFile(ctx, *verifyFile); err != nil {
			log.Error(ctx, "verification failed", logger.Error(err))
			stop()
			os.Exit(1)
		}
	}
}
