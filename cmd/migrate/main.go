package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/canopy/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "CANOPY_DB_DSN"

const usage = `usage: migrate [-dsn URL] <command>

commands:
  up          apply all pending migrations
  down        revert all migrations
  steps N     apply N migrations (negative reverts)
  version     print the current version
  force N     set the version without running migrations

The DSN defaults to $CANOPY_DB_DSN, then to the [database] section of config.toml.
`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dsn := flag.String("dsn", "", "Postgres connection URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(logger, *dsn, flag.Args()); err != nil {
		logger.Error("migration failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, dsn string, args []string) error {
	dsn, err := resolveDSN(dsn)
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	switch args[0] {
	case "up":
		return noChange(logger, "migrations applied", m.Up())
	case "down":
		return noChange(logger, "migrations reverted", m.Down())
	case "steps":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return noChange(logger, "migration steps applied", m.Steps(n))
	case "force":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		if err := m.Force(n); err != nil {
			return err
		}
		logger.Warn("migration version forced", "version", n)
		return nil
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("no migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("migration version", "version", v, "dirty", dirty)
		return nil
	}

	flag.Usage()
	return fmt.Errorf("unknown command %q", args[0])
}

func resolveDSN(flagDSN string) (string, error) {
	if flagDSN != "" {
		return flagDSN, nil
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("no dsn given and config load failed: %w", err)
	}
	return cfg.Database.Dsn(), nil
}

func intArg(args []string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a number", args[0])
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", args[0], err)
	}
	return n, nil
}

func noChange(logger *slog.Logger, msg string, err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info(msg)
	return nil
}
