package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/mensagens-api/internal/config"
	"github.com/phrazzld/mensagens-api/internal/platform/postgres"
)

// runMigrations executes a goose command against db using the embedded
// migrations. Every log line of one run shares a correlation ID.
func runMigrations(
	ctx context.Context,
	db *sql.DB,
	cfg *config.Config,
	command string,
	logger *slog.Logger,
) error {
	if !isMigrationCommand(command) {
		return fmt.Errorf("unknown migration command %q (want up, down, status or version)", command)
	}

	migrationLogger := logger.With(
		"correlation_id", uuid.New().String(),
		"component", "migrations",
		"command", command,
	)

	startTime := time.Now()
	migrationLogger.Info("Starting migration operation",
		"operation", fmt.Sprintf("goose %s", command),
		"url", maskDatabaseURL(cfg.Database.URL))

	if err := postgres.RunMigrations(ctx, db, command, migrationLogger); err != nil {
		migrationLogger.Error("Migration failed",
			"error", err,
			"duration_ms", time.Since(startTime).Milliseconds())
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	migrationLogger.Info("Migration operation completed",
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}

func isMigrationCommand(command string) bool {
	switch command {
	case postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus, postgres.MigrateVersion:
		return true
	default:
		return false
	}
}

// maskDatabaseURL hides the password of a database URL so it can be logged.
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); hasPassword {
			parsedURL.User = url.UserPassword(parsedURL.User.Username(), "xxxxx")
		}
		return parsedURL.String()
	}

	return dbURL
}

// extractHostFromURL returns the host name of a database URL.
func extractHostFromURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "unknown"
	}

	return parsedURL.Hostname()
}
