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

	"bookstore-be/internal/db"
	"bookstore-be/internal/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const migrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	mode := flag.String("mode", "up", "migration mode: up, down or status")
	dir := flag.String("dir", "./migrations", "directory with *.sql migrations")
	flag.Parse()

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		logger.L().Fatal("DB_URL not set in environment")
	}

	conn, err := sql.Open("postgres", dbURL)
	if err != nil {
		logger.L().Fatal("failed to open database", zap.Error(err))
	}
	defer conn.Close()

	if err := run(context.Background(), conn, *mode, *dir); err != nil {
		logger.L().Fatal("migration failed", zap.String("mode", *mode), zap.Error(err))
	}
}

func run(ctx context.Context, conn *sql.DB, mode, migrationsDir string) error {
	if _, err := conn.ExecContext(ctx, migrationsTable); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	switch mode {
	case "up":
		return migrateUp(ctx, conn, files)
	case "down":
		return migrateDown(ctx, conn, files)
	case "status":
		return status(ctx, conn, files)
	default:
		return fmt.Errorf("unknown mode: %s (use up, down or status)", mode)
	}
}

func isApplied(ctx context.Context, conn *sql.DB, version string) (bool, error) {
	var exists bool
	err := conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&exists)
	return exists, err
}

// migrateUp applies every pending migration. Each file and its version row
// commit together.
func migrateUp(ctx context.Context, conn *sql.DB, files []string) error {
	log := logger.L().With(zap.String("mode", "up"))

	applied := 0
	for _, file := range files {
		version := filepath.Base(file)

		done, err := isApplied(ctx, conn, version)
		if err != nil {
			return fmt.Errorf("check %s: %w", version, err)
		}
		if done {
			log.Debug("skipping applied migration", zap.String("version", version))
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}

		log.Info("applying migration", zap.String("version", version))
		err = db.WithTx(ctx, conn, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, extractMigrationPart(string(content), "Up")); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply %s: %w", version, err)
		}
		applied++
	}

	log.Info("migrations up to date", zap.Int("applied", applied))
	return nil
}

// migrateDown rolls back the most recently applied migration.
func migrateDown(ctx context.Context, conn *sql.DB, files []string) error {
	log := logger.L().With(zap.String("mode", "down"))

	var version string
	err := conn.QueryRowContext(ctx,
		`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`,
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("find last migration: %w", err)
	}

	var path string
	for _, f := range files {
		if filepath.Base(f) == version {
			path = f
			break
		}
	}
	if path == "" {
		return fmt.Errorf("migration file not found for version %s", version)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	log.Info("rolling back migration", zap.String("version", version))
	return db.WithTx(ctx, conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, extractMigrationPart(string(content), "Down")); err != nil {
			return fmt.Errorf("roll back %s: %w", version, err)
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = $1`, version)
		return err
	})
}

func status(ctx context.Context, conn *sql.DB, files []string) error {
	log := logger.L()
	for _, file := range files {
		version := filepath.Base(file)
		done, err := isApplied(ctx, conn, version)
		if err != nil {
			return fmt.Errorf("check %s: %w", version, err)
		}
		log.Info("migration", zap.String("version", version), zap.Bool("applied", done))
	}
	return nil
}

// extractMigrationPart returns the statements between "-- +migrate <section>"
// and the next marker.
func extractMigrationPart(content, section string) string {
	var part strings.Builder
	inPart := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-- +migrate") {
			if inPart {
				break
			}
			inPart = strings.TrimSpace(strings.TrimPrefix(trimmed, "-- +migrate")) == section
			continue
		}
		if inPart {
			part.WriteString(line)
			part.WriteByte('\n')
		}
	}
	return part.String()
}
