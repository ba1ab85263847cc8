package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/deppfellow/yamdb/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// The binary carries its own schema.
//
//go:embed migrations/*.sql
var migrations embed.FS

// versionTable is where tern records the applied migration version.
const versionTable = "schema_version"

func newMigrator(ctx context.Context, conn *pgx.Conn) (*tern.Migrator, error) {
	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return nil, fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return nil, fmt.Errorf("loading database migrations: %w", err)
	}

	return m, nil
}

// Migrate migrates the schema to targetVersion over a dedicated connection.
// A negative targetVersion means "latest"; zero rolls everything back.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config, targetVersion int32) error {
	conn, err := pgx.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	return MigrateConn(ctx, logger, conn, targetVersion)
}

// MigrateConn migrates using an already open connection.
func MigrateConn(ctx context.Context, logger *zerolog.Logger, conn *pgx.Conn, targetVersion int32) error {
	m, err := newMigrator(ctx, conn)
	if err != nil {
		return err
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	latest := int32(len(m.Migrations))
	if targetVersion < 0 || targetVersion > latest {
		targetVersion = latest
	}

	if from == targetVersion {
		logger.Info().Msgf("database schema up to date, version %d", from)
		return nil
	}

	if err := m.MigrateTo(ctx, targetVersion); err != nil {
		return fmt.Errorf("migrating from %d to %d: %w", from, targetVersion, err)
	}

	logger.Info().Msgf("migrated database schema, from %d to %d", from, targetVersion)
	return nil
}
