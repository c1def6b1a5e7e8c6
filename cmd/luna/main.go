package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/luna/internal/config"
	"github.com/terraincognita07/luna/internal/db"
	"github.com/terraincognita07/luna/internal/models"
	"github.com/terraincognita07/luna/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	dbPath     string
	today      string
}

func newRootCmd() *cobra.Command {
	options := &rootOptions{}

	root := &cobra.Command{
		Use:           "luna",
		Short:         "Private period tracker with cycle predictions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&options.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&options.dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	root.PersistentFlags().StringVar(&options.today, "today", "", "treat this YYYY-MM-DD date as today")

	root.AddCommand(newServeCmd(options))
	root.AddCommand(newStatusCmd(options))
	root.AddCommand(newInsightsCmd(options))
	root.AddCommand(newPredictionsCmd(options))
	root.AddCommand(newCalendarCmd(options))
	root.AddCommand(newLogCmd(options))
	root.AddCommand(newExportCmd(options))
	root.AddCommand(newImportCmd(options))
	root.AddCommand(newClearCmd(options))
	root.AddCommand(newPassphraseCmd(options))
	return root
}

// appRuntime is everything a command needs once config and storage are open.
type appRuntime struct {
	cfg      config.Config
	store    services.KeyValueStore
	cycles   *services.CycleService
	settings *services.SettingsService
	closer   func() error
	location *time.Location
	today    time.Time
}

func openRuntime(options *rootOptions) (*appRuntime, error) {
	cfg, err := config.Load(options.configPath)
	if err != nil {
		return nil, err
	}
	if path := strings.TrimSpace(options.dbPath); path != "" {
		cfg.DBPath = path
	}
	location := cfg.Location()

	today := services.TodayAt(time.Now(), location)
	if raw := strings.TrimSpace(options.today); raw != "" {
		today, err = models.ParseDay(raw)
		if err != nil {
			return nil, fmt.Errorf("--today: %w", err)
		}
	}

	rt := &appRuntime{cfg: cfg, location: location, today: today}
	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		store, err := db.OpenPostgres(dsn)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		rt.closer = store.Close
		rt.bind(store)
		return rt, nil
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	rt.closer = func() error { return db.CloseSQLite(database) }
	rt.bind(db.NewRepositories(database).KeyValues)
	return rt, nil
}

func (rt *appRuntime) bind(store services.KeyValueStore) {
	rt.store = store
	rt.cycles = services.NewCycleService(store)
	rt.settings = services.NewSettingsService(store)
}

// exporter shares the cycle and settings services so their locks cover
// imports and clears.
func (rt *appRuntime) exporter() *services.ExportService {
	return services.NewExportService(rt.store, rt.cycles, rt.settings)
}

func (rt *appRuntime) Close() error {
	return rt.closer()
}

// withRuntime opens storage for the duration of run.
func withRuntime(options *rootOptions, run func(rt *appRuntime) error) error {
	rt, err := openRuntime(options)
	if err != nil {
		return err
	}
	runErr := run(rt)
	if err := rt.Close(); err != nil && runErr == nil {
		return fmt.Errorf("close database: %w", err)
	}
	return runErr
}
