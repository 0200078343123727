package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/inte-real/inte-real-backend/internal/pipeline/domain"
)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// PromptArchive is a durable append-only mirror of PromptRecords. Unlike the
// snapshot store it keeps every record in its own row, so prompt history
// survives local-store resets and remote reconciles.
type PromptArchive struct {
	db *sql.DB
}

func NewPromptArchive(db *sql.DB) *PromptArchive {
	return &PromptArchive{db: db}
}

// EnsureSchema creates the archive table when it does not exist.
func (a *PromptArchive) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS prompt_archive (
    id           TEXT PRIMARY KEY,
    project_id   TEXT NOT NULL,
    project_name TEXT NOT NULL,
    stage        TEXT NOT NULL,
    prompt       TEXT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_prompt_archive_project ON prompt_archive (project_id);
`
	_, err := a.db.ExecContext(ctx, q)
	return err
}

// Insert archives one prompt record. Inserting the same id twice is a no-op.
func (a *PromptArchive) Insert(ctx context.Context, rec domain.PromptRecord) error {
	const q = `
INSERT INTO prompt_archive (id, project_id, project_name, stage, prompt, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING;
`
	_, err := a.db.ExecContext(ctx, q,
		rec.ID, rec.ProjectID, rec.ProjectName, string(rec.Stage), rec.Prompt, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("archive prompt: %w", err)
	}
	return nil
}

// ListByProject returns all archived prompts for one project, newest first.
func (a *PromptArchive) ListByProject(ctx context.Context, projectID string) ([]domain.PromptRecord, error) {
	const q = `
SELECT id, project_id, project_name, stage, prompt, created_at
FROM prompt_archive
WHERE project_id = $1
ORDER BY created_at DESC;
`
	return a.scanList(a.db.QueryContext(ctx, q, projectID))
}

// ListRecent returns the most recent archived prompts across all projects.
func (a *PromptArchive) ListRecent(ctx context.Context, limit int) ([]domain.PromptRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, project_id, project_name, stage, prompt, created_at
FROM prompt_archive
ORDER BY created_at DESC
LIMIT $1;
`
	return a.scanList(a.db.QueryContext(ctx, q, limit))
}

// Delete removes one archived record by id.
func (a *PromptArchive) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM prompt_archive WHERE id = $1;`
	result, err := a.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (a *PromptArchive) scanList(rows *sql.Rows, err error) ([]domain.PromptRecord, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.PromptRecord, 0, 16)
	for rows.Next() {
		var rec domain.PromptRecord
		var stage string
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.ProjectName, &stage, &rec.Prompt, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Stage = domain.StageKey(stage)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
