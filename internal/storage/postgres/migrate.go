package postgres

import (
	"embed"
	stderrors "errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // registers the postgres:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// MigrationResult describes the schema state after a migration run
type MigrationResult struct {
	Version uint
	Dirty   bool
	Changed bool
}

// Migrate applies schema migrations against dsn. steps > 0 moves forward that
// many versions, steps < 0 moves back, zero applies everything pending.
func Migrate(dsn string, steps int, logger *zap.Logger) (*MigrationResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "opening embedded migrations")
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return nil, errors.Transport(err, "creating migrator")
	}
	defer func() { _, _ = m.Close() }()

	if steps == 0 {
		err = m.Up()
	} else {
		err = m.Steps(steps)
	}
	changed := true
	if stderrors.Is(err, migrate.ErrNoChange) {
		changed = false
		err = nil
	}
	if err != nil {
		return nil, errors.Transport(err, "migration failed")
	}

	version, dirty, err := m.Version()
	if err != nil && !stderrors.Is(err, migrate.ErrNilVersion) {
		return nil, errors.Transport(err, "reading schema version")
	}

	logger.Info("schema migrated",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
		zap.Bool("changed", changed))

	return &MigrationResult{Version: version, Dirty: dirty, Changed: changed}, nil
}
