// Package store archives generated roadmaps in PostgreSQL.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when no roadmap has the requested id.
var ErrNotFound = errors.New("roadmap not found")

// Record is one archived roadmap.
type Record struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"fileName"`
	FullName  string    `json:"fullName"`
	Field     string    `json:"field"`
	Curated   bool      `json:"curated"`
	Content   []byte    `json:"-"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// Archive stores roadmaps in the roadmaps table.
type Archive struct {
	pool *pgxpool.Pool
}

// New connects to the database at dsn.
func New(ctx context.Context, dsn string) (archive *Archive, err error) {
	var pool *pgxpool.Pool
	pool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		err = errors.Wrap(err, "failed to create connection pool")
		return archive, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		err = errors.Wrap(err, "failed to ping database")
		return archive, err
	}

	archive = &Archive{pool: pool}
	return archive, err
}

// Close releases the pool.
func (a *Archive) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS roadmaps (
	id          UUID PRIMARY KEY,
	file_name   TEXT NOT NULL,
	full_name   TEXT NOT NULL,
	field       TEXT NOT NULL,
	curated     BOOLEAN NOT NULL DEFAULT FALSE,
	content     BYTEA NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS roadmaps_created_at_idx ON roadmaps (created_at DESC);
`

// EnsureSchema creates the roadmaps table if needed.
func (a *Archive) EnsureSchema(ctx context.Context) (err error) {
	_, err = a.pool.Exec(ctx, schemaSQL)
	if err != nil {
		err = errors.Wrap(err, "failed to create roadmaps schema")
		return err
	}
	return err
}

// Save inserts rec, assigning an id and timestamp when missing.
func (a *Archive) Save(ctx context.Context, rec Record) (saved Record, err error) {
	saved = rec
	if saved.ID == uuid.Nil {
		saved.ID = uuid.New()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now().UTC()
	}
	saved.Size = len(saved.Content)

	_, err = a.pool.Exec(ctx, `
		INSERT INTO roadmaps (id, file_name, full_name, field, curated, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		saved.ID, saved.FileName, saved.FullName, saved.Field, saved.Curated, saved.Content, saved.CreatedAt,
	)
	if err != nil {
		err = errors.Wrapf(err, "failed to save roadmap %s", saved.ID)
		return saved, err
	}

	return saved, err
}

// Get loads a roadmap including its content.
func (a *Archive) Get(ctx context.Context, id uuid.UUID) (rec Record, err error) {
	err = a.pool.QueryRow(ctx, `
		SELECT id, file_name, full_name, field, curated, content, created_at
		FROM roadmaps
		WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.FileName, &rec.FullName, &rec.Field, &rec.Curated, &rec.Content, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrNotFound
		return rec, err
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to get roadmap %s", id)
		return rec, err
	}

	rec.Size = len(rec.Content)
	return rec, err
}

// List returns metadata for the newest roadmaps, without content.
func (a *Archive) List(ctx context.Context, limit int) (records []Record, err error) {
	if limit <= 0 {
		limit = 50
	}

	var rows pgx.Rows
	rows, err = a.pool.Query(ctx, `
		SELECT id, file_name, full_name, field, curated, octet_length(content), created_at
		FROM roadmaps
		ORDER BY created_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		err = errors.Wrap(err, "failed to list roadmaps")
		return records, err
	}
	defer rows.Close()

	records = []Record{}
	for rows.Next() {
		var rec Record
		err = rows.Scan(&rec.ID, &rec.FileName, &rec.FullName, &rec.Field, &rec.Curated, &rec.Size, &rec.CreatedAt)
		if err != nil {
			err = errors.Wrap(err, "failed to scan roadmap row")
			return records, err
		}
		records = append(records, rec)
	}

	err = rows.Err()
	if err != nil {
		err = errors.Wrap(err, "failed to iterate roadmap rows")
		return records, err
	}

	return records, err
}
