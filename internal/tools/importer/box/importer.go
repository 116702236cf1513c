// Package boximporter installs box manifests from the command line.
package boximporter

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/louisbranch/boxsync/internal/platform/cmd"
	"github.com/louisbranch/boxsync/internal/platform/i18n"
	"github.com/louisbranch/boxsync/internal/platform/logger"
	"github.com/louisbranch/boxsync/internal/platform/otel"
	"github.com/louisbranch/boxsync/internal/services/box/domain"
	"github.com/louisbranch/boxsync/internal/services/box/install"
	"github.com/louisbranch/boxsync/internal/services/box/manifest"
	"github.com/louisbranch/boxsync/internal/services/box/storage/postgres"
	"github.com/louisbranch/boxsync/internal/services/box/storage/sqlite"
	"github.com/louisbranch/boxsync/internal/services/box/storage/sqlstore"
)

const (
	driverSQLite   = "sqlite"
	driverPostgres = "postgres"
)

// Config holds configuration for the box importer. Environment variables
// (BOXSYNC_ prefix) provide defaults that flags override.
type Config struct {
	ManifestPath  string `env:"MANIFEST"`
	PackageID     int64  `env:"PACKAGE_ID"`
	DBDriver      string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBPath        string `env:"DB_PATH" envDefault:"data/boxes.db"`
	DBDSN         string `env:"DB_DSN"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`
	DryRun        bool   `env:"DRY_RUN"`
	MetricsFile   string `env:"METRICS_FILE"`
	LogMode       string `env:"LOG_MODE" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	Telemetry     otel.Config
}

// ParseConfig parses env defaults and CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.ManifestPath, "manifest", cfg.ManifestPath, "box manifest XML file")
	fs.Int64Var(&cfg.PackageID, "package-id", cfg.PackageID, "id of the package that owns the boxes")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver (sqlite or postgres)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "sqlite database path")
	fs.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "postgres connection string")
	fs.StringVar(&cfg.DefaultLocale, "default-locale", cfg.DefaultLocale, "locale used for single-column names")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "validate without writing to the database")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write prometheus metrics to this file after the run")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.ManifestPath) == "" {
		return errors.New("manifest is required")
	}
	if strings.TrimSpace(c.DefaultLocale) == "" {
		return errors.New("default-locale is required")
	}
	if c.DryRun {
		return nil
	}
	if c.PackageID <= 0 {
		return errors.New("package-id must be positive")
	}
	switch c.DBDriver {
	case driverSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("db-path is required for sqlite")
		}
	case driverPostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return errors.New("db-dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported db-driver %q", c.DBDriver)
	}
	return nil
}

// Run executes the importer using the provided Config.
func Run(ctx context.Context, cfg Config, out io.Writer, log *logger.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = logger.Nop()
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	doc, err := readManifest(cfg.ManifestPath)
	if err != nil {
		return err
	}
	resolver, err := i18n.NewResolver(cfg.DefaultLocale)
	if err != nil {
		return fmt.Errorf("default locale: %w", err)
	}

	if cfg.DryRun {
		for _, item := range doc.Import {
			if _, err := domain.Normalize(item, resolver); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(out, "validated %d box(es) and %d delete(s) in %s\n", len(doc.Import), len(doc.Delete), cfg.ManifestPath)
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	registry := prometheus.NewRegistry()
	engine, err := install.New(install.Config{PackageID: cfg.PackageID}, store, resolver,
		install.WithLogger(log.With("manifest", cfg.ManifestPath, "driver", store.Dialect())),
		install.WithMetrics(install.NewMetrics(registry)),
	)
	if err != nil {
		return err
	}

	summary, runErr := engine.Run(ctx, doc)
	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
			return errors.Join(runErr, fmt.Errorf("write metrics: %w", err))
		}
	}
	if runErr != nil {
		return runErr
	}

	_, err = fmt.Fprintf(out, "installed %d box(es) for package %d: %d inserted, %d updated, %d skipped, %d deleted, %d visibility row(s)\n",
		len(summary.Items),
		cfg.PackageID,
		summary.Count(install.OutcomeInserted),
		summary.Count(install.OutcomeUpdated),
		summary.Count(install.OutcomeSkipped),
		summary.Deleted,
		summary.ExceptionRows,
	)
	return err
}

func readManifest(path string) (manifest.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return manifest.Document{}, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return manifest.Parse(f)
}

func openStore(ctx context.Context, cfg Config) (*sqlstore.Store, error) {
	switch cfg.DBDriver {
	case driverPostgres:
		store, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("open box store: %w", err)
		}
		return store, nil
	default:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		store, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open box store: %w", err)
		}
		return store, nil
	}
}
