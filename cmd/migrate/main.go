package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"myshop-be/internal/config"
	"myshop-be/internal/db"
	"myshop-be/internal/logger"

	"go.uber.org/zap"
)

const (
	sectionUp   = "Up"
	sectionDown = "Down"
	marker      = "-- +migrate "
)

var errUnknownMode = errors.New("unknown mode (use 'up', 'down' or 'status')")

type migration struct {
	Version string
	Path    string
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or status")
	dir := flag.String("dir", "./migrations", "directory holding *.sql migrations")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect db", zap.Error(err))
	}
	defer database.Close()

	if err := run(context.Background(), database, *mode, *dir); err != nil {
		logger.L().Fatal("migration failed", zap.String("mode", *mode), zap.Error(err))
	}
}

func run(ctx context.Context, db *sql.DB, mode, migrationsDir string) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	migrations, err := loadMigrations(migrationsDir)
	if err != nil {
		return err
	}

	switch mode {
	case "up":
		return migrateUp(ctx, db, migrations)
	case "down":
		return migrateDown(ctx, db, migrations)
	case "status":
		return status(ctx, db, migrations)
	default:
		return fmt.Errorf("%w: %s", errUnknownMode, mode)
	}
}

// loadMigrations lists *.sql files in lexical order, which is apply order.
func loadMigrations(dir string) ([]migration, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	sort.Strings(files)

	out := make([]migration, 0, len(files))
	for _, f := range files {
		out = append(out, migration{Version: filepath.Base(f), Path: f})
	}
	return out, nil
}

func applied(ctx context.Context, db *sql.DB, version string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// migrateUp applies each pending file and its bookkeeping row in one transaction.
func migrateUp(ctx context.Context, db *sql.DB, migrations []migration) error {
	log := logger.L().With(zap.String("mode", "up"))

	for _, m := range migrations {
		done, err := applied(ctx, db, m.Version)
		if err != nil {
			return err
		}
		if done {
			log.Debug("skipping applied migration", zap.String("version", m.Version))
			continue
		}

		upSQL, err := readSection(m.Path, sectionUp)
		if err != nil {
			return err
		}

		log.Info("applying migration", zap.String("version", m.Version))
		if err := inTx(ctx, db, upSQL, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.Version, err)
		}
	}

	log.Info("all migrations applied")
	return nil
}

// migrateDown rolls back only the most recently applied migration.
func migrateDown(ctx context.Context, db *sql.DB, migrations []migration) error {
	log := logger.L().With(zap.String("mode", "down"))

	var last string
	err := db.QueryRowContext(ctx,
		`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`,
	).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}

	var target *migration
	for i := range migrations {
		if migrations[i].Version == last {
			target = &migrations[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration file not found for version: %s", last)
	}

	downSQL, err := readSection(target.Path, sectionDown)
	if err != nil {
		return err
	}

	log.Info("rolling back migration", zap.String("version", last))
	if err := inTx(ctx, db, downSQL, `DELETE FROM schema_migrations WHERE version = $1`, last); err != nil {
		return fmt.Errorf("rollback %s failed: %w", last, err)
	}
	return nil
}

func status(ctx context.Context, db *sql.DB, migrations []migration) error {
	for _, m := range migrations {
		done, err := applied(ctx, db, m.Version)
		if err != nil {
			return err
		}
		state := "pending"
		if done {
			state = "applied"
		}
		fmt.Printf("%-10s %s\n", state, m.Version)
	}
	return nil
}

func inTx(ctx context.Context, db *sql.DB, script, record, version string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, record, version); err != nil {
		return fmt.Errorf("failed to record migration version: %w", err)
	}
	return tx.Commit()
}

func readSection(path, section string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return extractMigrationPart(string(content), section), nil
}

// extractMigrationPart returns the lines between "-- +migrate <section>"
// and the next marker.
func extractMigrationPart(content string, section string) string {
	var part strings.Builder
	var inPart bool

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == marker+section {
			inPart = true
			continue
		}
		if inPart && strings.HasPrefix(trimmed, marker) {
			break
		}
		if inPart {
			part.WriteString(line + "\n")
		}
	}
	return part.String()
}
