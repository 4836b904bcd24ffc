package roster

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/KirkDiggler/doodle-garden/internal/errors"
	"github.com/KirkDiggler/doodle-garden/internal/pkg/clock"
)

// SQL dialects
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

const sqlSchema = `
CREATE TABLE IF NOT EXISTS garden_kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`

type sqlQueries struct {
	load string
	save string
}

var dialectQueries = map[string]sqlQueries{
	DialectSQLite: {
		load: `SELECT value FROM garden_kv WHERE key = ?`,
		save: `INSERT INTO garden_kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	},
	DialectPostgres: {
		load: `SELECT value FROM garden_kv WHERE key = $1`,
		save: `INSERT INTO garden_kv (key, value, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	},
}

type sqlRepository struct {
	db      *sql.DB
	key     string
	queries sqlQueries
	clock   clock.Clock
}

// SQLConfig contains configuration for the SQL roster repository
type SQLConfig struct {
	DB      *sql.DB
	Dialect string
	Key     string
	Clock   clock.Clock
}

// Validate validates the SQLConfig
func (cfg *SQLConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if cfg.DB == nil {
		vb.RequiredField("DB")
	}
	errors.ValidateEnum("Dialect", cfg.Dialect, []string{DialectSQLite, DialectPostgres}, vb)
	return vb.Build()
}

// NewSQL creates a roster repository on a key/value table, creating the
// table if needed. The caller owns the database handle.
func NewSQL(ctx context.Context, cfg *SQLConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if _, err := cfg.DB.ExecContext(ctx, sqlSchema); err != nil {
		return nil, errors.Wrap(err, "failed to create roster schema")
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &sqlRepository{
		db:      cfg.DB,
		key:     key,
		queries: dialectQueries[cfg.Dialect],
		clock:   c,
	}, nil
}

func (r *sqlRepository) Load(ctx context.Context, _ LoadInput) (*LoadOutput, error) {
	var value string
	err := r.db.QueryRowContext(ctx, r.queries.load, r.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.DebugContext(ctx, "roster row not found", "key", r.key)
			return &LoadOutput{Record: &Record{}}, nil
		}
		return nil, errors.Wrapf(err, "failed to query roster").WithMeta("key", r.key)
	}

	record, err := Decode([]byte(value))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode roster").WithMeta("key", r.key)
	}

	return &LoadOutput{Record: record, Found: true}, nil
}

func (r *sqlRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	data, err := Encode(input.Record)
	if err != nil {
		return nil, err
	}

	// a single upsert statement is atomic on both dialects
	if _, err := r.db.ExecContext(ctx, r.queries.save, r.key, string(data), r.clock.Now().UTC()); err != nil {
		return nil, errors.Wrapf(err, "failed to save roster").WithMeta("key", r.key)
	}

	slog.DebugContext(ctx, "saved roster",
		"key", r.key,
		"plants", len(input.Record.Plants),
		"bytes", len(data))

	return &SaveOutput{Bytes: len(data)}, nil
}
