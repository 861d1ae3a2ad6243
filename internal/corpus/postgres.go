package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/capitalize-ai/response-engine/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS training_entries (
	id           TEXT PRIMARY KEY,
	trigger_text TEXT NOT NULL,
	response     TEXT NOT NULL DEFAULT '',
	category     TEXT NOT NULL DEFAULT '',
	keywords     TEXT[] NOT NULL DEFAULT '{}',
	active       BOOLEAN NOT NULL DEFAULT FALSE,
	needs_review BOOLEAN NOT NULL DEFAULT FALSE,
	usage_count  INTEGER NOT NULL DEFAULT 0,
	success_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_by   TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_training_entries_active ON training_entries (active);
CREATE INDEX IF NOT EXISTS idx_training_entries_review ON training_entries (needs_review);

CREATE TABLE IF NOT EXISTS interactions (
	id              TEXT PRIMARY KEY,
	entry_id        TEXT NOT NULL REFERENCES training_entries (id),
	conversation_id TEXT NOT NULL DEFAULT '',
	message         TEXT NOT NULL DEFAULT '',
	was_helpful     BOOLEAN,
	note            TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_interactions_entry ON interactions (entry_id);
`

const entryColumns = `id, trigger_text, response, category, keywords, active,
	needs_review, usage_count, success_rate, created_by, created_at, updated_at`

// PostgresRepository implements Repository on PostgreSQL via lib/pq.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository opens a connection, verifies it, and bootstraps the
// schema.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("error initializing schema: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

func scanEntry(row interface{ Scan(...any) error }) (*model.TrainingEntry, error) {
	var e model.TrainingEntry
	var keywords pq.StringArray
	err := row.Scan(&e.ID, &e.Trigger, &e.Response, &e.Category, &keywords,
		&e.Active, &e.NeedsReview, &e.UsageCount, &e.SuccessRate,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Keywords = keywords
	return &e, nil
}

func (r *PostgresRepository) queryEntries(ctx context.Context, query string, args ...any) ([]model.TrainingEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TrainingEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) FindActive(ctx context.Context) ([]model.TrainingEntry, error) {
	return r.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM training_entries WHERE active ORDER BY created_at, id`)
}

func (r *PostgresRepository) List(ctx context.Context, needsReview *bool) ([]model.TrainingEntry, error) {
	if needsReview == nil {
		return r.queryEntries(ctx,
			`SELECT `+entryColumns+` FROM training_entries ORDER BY created_at, id`)
	}
	return r.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM training_entries WHERE needs_review = $1 ORDER BY created_at, id`,
		*needsReview)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*model.TrainingEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM training_entries WHERE id = $1`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// likeEscaper neutralizes LIKE metacharacters so user text only ever
// matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *PostgresRepository) FindUnresolved(ctx context.Context, message string, category model.Category) (*model.TrainingEntry, error) {
	needle := likeEscaper.Replace(strings.ToLower(strings.TrimSpace(message)))
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM training_entries
		 WHERE needs_review AND TRIM(response) = '' AND category = $1
		   AND LOWER(trigger_text) LIKE '%' || $2 || '%'
		 ORDER BY created_at, id LIMIT 1`,
		string(category), needle)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

func (r *PostgresRepository) Create(ctx context.Context, entry *model.TrainingEntry) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO training_entries
		 (id, trigger_text, response, category, keywords, active, needs_review,
		  usage_count, success_rate, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		entry.ID, entry.Trigger, entry.Response, string(entry.Category),
		pq.Array(entry.Keywords), entry.Active, entry.NeedsReview,
		entry.UsageCount, entry.SuccessRate, entry.CreatedBy,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating training entry: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, entry *model.TrainingEntry) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE training_entries
		 SET trigger_text = $2, response = $3, category = $4, keywords = $5,
		     active = $6, needs_review = $7, usage_count = $8,
		     success_rate = $9, updated_at = NOW()
		 WHERE id = $1`,
		entry.ID, entry.Trigger, entry.Response, string(entry.Category),
		pq.Array(entry.Keywords), entry.Active, entry.NeedsReview,
		entry.UsageCount, entry.SuccessRate)
	if err != nil {
		return fmt.Errorf("error updating training entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) IncrementUsage(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`UPDATE training_entries
		 SET usage_count = usage_count + 1, updated_at = NOW()
		 WHERE id = $1 RETURNING usage_count`, id).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("error incrementing usage: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) RecordInteraction(ctx context.Context, in *model.Interaction) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO interactions (id, entry_id, conversation_id, message, was_helpful, note)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		in.ID, in.EntryID, in.ConversationID, in.Message, in.WasHelpful, in.Note,
	).Scan(&in.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording interaction: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindInteraction(ctx context.Context, id string) (*model.Interaction, error) {
	var in model.Interaction
	err := r.db.QueryRowContext(ctx,
		`SELECT id, entry_id, conversation_id, message, was_helpful, note, created_at
		 FROM interactions WHERE id = $1`, id,
	).Scan(&in.ID, &in.EntryID, &in.ConversationID, &in.Message,
		&in.WasHelpful, &in.Note, &in.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *PostgresRepository) UpdateInteraction(ctx context.Context, in *model.Interaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE interactions SET was_helpful = $2, note = $3 WHERE id = $1`,
		in.ID, in.WasHelpful, in.Note)
	if err != nil {
		return fmt.Errorf("error updating interaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CountHelpful(ctx context.Context, entryID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM interactions WHERE entry_id = $1 AND was_helpful`,
		entryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting helpful interactions: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}
