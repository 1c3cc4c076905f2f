// Package migrations embeds the SQL schema of the learning platform and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

var errNilDB = errors.New("migration error: db is nil")

// Migrate applies every pending migration and logs the versions it ran.
func Migrate(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errNilDB
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, embedMigrations)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	log := logger.FromContext(ctx)
	for _, result := range results {
		log.Info().
			Int64("version", result.Source.Version).
			Dur("duration", result.Duration).
			Msg("migration applied")
	}

	return nil
}

// Files lists the embedded migration file names in version order.
func Files() ([]string, error) {
	return fs.Glob(embedMigrations, "*.sql")
}
