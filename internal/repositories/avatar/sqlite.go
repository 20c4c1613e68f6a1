package avatar

import (
	"context"
	"database/sql"
	stderrors "errors"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/clock"
)

const schema = `CREATE TABLE IF NOT EXISTS avatars (
	character_id INTEGER PRIMARY KEY,
	uri          TEXT    NOT NULL,
	updated_at   INTEGER NOT NULL
)`

// SQLiteConfig holds the configuration for the sqlite avatar store
type SQLiteConfig struct {
	Path   string
	Clock  clock.Clock
	Logger *zap.Logger
}

// Validate ensures the configuration is usable
func (cfg *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", cfg.Path, vb)
	return vb.Build()
}

// SQLiteStore implements Store on a local sqlite file
type SQLiteStore struct {
	db     *sql.DB
	clock  clock.Clock
	logger *zap.Logger
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens the avatar database at cfg.Path and creates its table
func OpenSQLite(cfg *SQLiteConfig) (*SQLiteStore, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := filepath.Clean(cfg.Path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Transport(err, "failed to open avatar database")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Transport(err, "failed to ping avatar database")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Transport(err, "failed to create avatar table")
	}

	s := &SQLiteStore{db: db, clock: cfg.Clock, logger: cfg.Logger}
	if s.clock == nil {
		s.clock = clock.New()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s, nil
}

// Close releases the database handle
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Set attaches uri to a character, replacing any previous avatar
func (s *SQLiteStore) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if input.CharacterID <= 0 {
		return nil, errors.InvalidArgument("character ID must be positive")
	}
	uri := strings.TrimSpace(input.URI)
	if uri == "" {
		return nil, errors.InvalidArgument("avatar uri cannot be empty")
	}

	now := s.clock.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO avatars (character_id, uri, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(character_id) DO UPDATE SET uri = excluded.uri, updated_at = excluded.updated_at`,
		input.CharacterID, uri, now.UnixMilli(),
	)
	if err != nil {
		return nil, errors.Transportf(err, "failed to save avatar for character %d", input.CharacterID)
	}

	s.logger.Debug("avatar set", zap.Int64("character_id", input.CharacterID))
	return &SetOutput{Avatar: &entities.Avatar{
		CharacterID: input.CharacterID,
		URI:         uri,
		UpdatedAt:   now.Truncate(time.Millisecond),
	}}, nil
}

// Get loads a character's avatar
func (s *SQLiteStore) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.CharacterID <= 0 {
		return nil, errors.InvalidArgument("character ID must be positive")
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT character_id, uri, updated_at FROM avatars WHERE character_id = ?`,
		input.CharacterID,
	)
	avatar, err := scanAvatar(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("no avatar for character %d", input.CharacterID)
	}
	if err != nil {
		return nil, errors.Transportf(err, "failed to load avatar for character %d", input.CharacterID)
	}
	return &GetOutput{Avatar: avatar}, nil
}

// List returns every avatar ordered by character id
func (s *SQLiteStore) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT character_id, uri, updated_at FROM avatars ORDER BY character_id`)
	if err != nil {
		return nil, errors.Transport(err, "failed to list avatars")
	}
	defer rows.Close()

	avatars := make([]*entities.Avatar, 0)
	for rows.Next() {
		avatar, err := scanAvatar(rows)
		if err != nil {
			return nil, errors.Transport(err, "failed to read avatar row")
		}
		avatars = append(avatars, avatar)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Transport(err, "failed to list avatars")
	}
	return &ListOutput{Avatars: avatars}, nil
}

// Delete removes a character's avatar. Missing avatars are not an error.
func (s *SQLiteStore) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.CharacterID <= 0 {
		return nil, errors.InvalidArgument("character ID must be positive")
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM avatars WHERE character_id = ?`, input.CharacterID)
	if err != nil {
		return nil, errors.Transportf(err, "failed to delete avatar for character %d", input.CharacterID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Transport(err, "failed to read delete result")
	}
	return &DeleteOutput{Removed: n > 0}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAvatar(row scanner) (*entities.Avatar, error) {
	var (
		avatar    entities.Avatar
		updatedAt int64
	)
	if err := row.Scan(&avatar.CharacterID, &avatar.URI, &updatedAt); err != nil {
		return nil, err
	}
	avatar.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &avatar, nil
}
