package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/estimate/internal/cli"
	"github.com/alexanderramin/estimate/internal/config"
	"github.com/alexanderramin/estimate/internal/db"
	"github.com/alexanderramin/estimate/internal/export"
	"github.com/alexanderramin/estimate/internal/kv"
	"github.com/alexanderramin/estimate/internal/logger"
	"github.com/alexanderramin/estimate/internal/repository"
	"github.com/alexanderramin/estimate/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var closer io.Closer

	app := &cli.App{}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.Init = func(cmd *cobra.Command) error {
		configFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(config.LoadOptions{
			ConfigFile: configFile,
			Flags:      cmd.Root().PersistentFlags(),
		})
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}

		store, c, err := openStore(cmd.Context(), cfg.Store)
		if err != nil {
			return err
		}
		closer = c
		log.Debug().Str("store", cfg.Store.Kind).Str("workspace", cfg.Workspace).Msg("store_opened")

		wire(app, kv.WithPrefix(store, cfg.Workspace), cfg, log)
		return nil
	}

	err := cli.NewRootCmd(app).Execute()
	if closer != nil {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing store: %w", cerr)
		}
	}
	return err
}

// wire builds repositories and services over store and installs them on app.
func wire(app *cli.App, store kv.Store, cfg *config.Config, log zerolog.Logger) {
	observer := service.NewLogUseCaseObserver(log)

	projectRepo := repository.NewKVProjectRepo(store)
	settingsRepo := repository.NewKVSettingsRepo(store)

	projectSvc := service.NewProjectService(projectRepo, settingsRepo, observer)
	settingsSvc := service.NewSettingsService(settingsRepo, projectRepo, observer)

	app.Projects = projectSvc
	app.Settings = settingsSvc
	app.Templates = service.NewTemplateService(settingsSvc, projectRepo, observer)
	app.Export = service.NewExportService(projectSvc, export.Options{FontPath: cfg.Export.PDFFont}, observer)
}

// openStore opens the configured backend. The returned closer is nil for
// the in-memory store.
func openStore(ctx context.Context, cfg config.StoreConfig) (kv.Store, io.Closer, error) {
	switch cfg.Kind {
	case config.StoreMemory:
		return kv.NewMemoryStore(), nil, nil
	case config.StoreRedis:
		s, err := kv.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.StorePostgres:
		database, err := db.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		s := kv.NewSQLStore(database, kv.DialectPostgres)
		return s, s, nil
	default:
		database, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		s := kv.NewSQLStore(database, kv.DialectSQLite)
		return s, s, nil
	}
}
