package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/fairwaypot/settlement/internal/app"
	"github.com/fairwaypot/settlement/internal/config"
	"github.com/fairwaypot/settlement/internal/observability"
	"github.com/fairwaypot/settlement/internal/platform/logging"
	"github.com/fairwaypot/settlement/internal/usecase"
)

// sweeper runs one settlement sweep and exits, for cron-style scheduling and
// manual operator re-runs.
func main() {
	tournamentID := flag.String("tournament", "", "restrict the sweep to one tournament id")
	timeout := flag.Duration("timeout", 15*time.Minute, "overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := application.Settlement.RunSweep(ctx, usecase.SweepInput{TournamentID: *tournamentID})
	if err != nil {
		logger.Error("settlement sweep failed", "error", err)
		_ = shutdownUptrace(context.Background())
		os.Exit(1)
	}

	logger.Info("settlement sweep completed",
		"tournaments_found", result.TournamentsFound,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"already_claimed", result.AlreadyClaimed,
		"leagues_settled", result.LeaguesSettled,
		"leagues_skipped", result.LeaguesSkipped,
		"leagues_failed", result.LeaguesFailed,
	)

	if err := shutdownUptrace(context.Background()); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}
	if result.Failed > 0 {
		os.Exit(1)
	}
}
