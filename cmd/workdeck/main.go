package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PicoEvanZhu/workdeck/internal/cli"
	"github.com/PicoEvanZhu/workdeck/internal/config"
	"github.com/PicoEvanZhu/workdeck/internal/db"
	"github.com/PicoEvanZhu/workdeck/internal/query"
	"github.com/PicoEvanZhu/workdeck/internal/relay"
	"github.com/PicoEvanZhu/workdeck/internal/repository"
	"github.com/PicoEvanZhu/workdeck/internal/service"
	"github.com/PicoEvanZhu/workdeck/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}
	if err := config.WriteStarter(cfgPath); err != nil {
		return fmt.Errorf("writing starter config: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.OpenDB(filepath.Join(cfg.DataDir, "workdeck.db"))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	prefs := repository.NewSQLitePrefsRepo(database)

	var observer relay.Observer = relay.NoopObserver{}
	if os.Getenv("WORKDECK_LOG_RELAY") != "" {
		observer = relay.NewLogObserver(os.Stderr)
	}
	client, err := relay.NewClient(relay.Config{BaseURL: cfg.RelayURL}, observer)
	if err != nil {
		return fmt.Errorf("creating relay client: %w", err)
	}

	// Each logical board view persists its filters under its own key.
	viewKey := "board:all"
	if cfg.DefaultProject != "" {
		viewKey = "board:project:" + cfg.DefaultProject
	}
	coord := query.NewCoordinator(prefs, viewKey, query.FilterState{
		ProjectID: cfg.DefaultProject,
		PageSize:  cfg.PageSize,
	})
	if err := coord.Restore(context.Background()); err != nil {
		return fmt.Errorf("restoring filters: %w", err)
	}

	recordStore := store.NewRecordStore()

	app := &cli.App{
		Config:    cfg,
		Board:     service.NewBoardService(client, recordStore, coord),
		Alignment: service.NewAlignmentService(client, recordStore, cfg.PageSize),
		Timeline:  service.NewTimelineService(recordStore),
		Items:     service.NewWorkItemService(client, recordStore),
		Directory: client,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
