package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/matchday-intel/internal/config"
	"github.com/riskibarqy/matchday-intel/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/matchday-intel/internal/infrastructure/rosterfile"
	"github.com/riskibarqy/matchday-intel/internal/platform/database"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
	"github.com/riskibarqy/matchday-intel/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewConsole(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], logger); err != nil {
		logger.Error("roster import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, args []string, logger *logging.Logger) error {
	flags := flag.NewFlagSet("rosterimport", flag.ContinueOnError)
	file := flags.String("file", cfg.RosterFile, "YAML roster file")
	dryRun := flags.Bool("dry-run", false, "validate the file without writing")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("roster file is required (-file or ROSTER_FILE)")
	}

	doc, err := rosterfile.LoadRoster(*file)
	if err != nil {
		return err
	}
	batch := usecase.RosterImport{
		Teams:     doc.RosterTeams(),
		Players:   doc.RosterPlayers(),
		LastKnown: doc.LastKnownLineups(),
	}

	if *dryRun {
		result, err := usecase.NewRosterImportService(nil, logger).Import(ctx, batch, true)
		if err != nil {
			return err
		}
		logger.Info("dry run ok", "file", *file, "teams", result.Teams, "players", result.Players)
		return nil
	}

	db, err := database.Open(ctx, database.Config{
		URL:                         cfg.DBURL,
		DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
		ServiceName:                 cfg.ServiceName,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := usecase.NewRosterImportService(postgres.NewRosterRepository(db), logger).Import(ctx, batch, false)
	if err != nil {
		return err
	}
	logger.Info("roster imported", "file", *file, "teams", result.Teams, "players", result.Players, "lineups", result.Lineups)
	return nil
}
