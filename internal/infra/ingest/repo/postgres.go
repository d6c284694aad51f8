package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/edubot/edubot-backend/internal/domain/ingest"
)

// PostgresDocumentRepository persists documents in Postgres.
type PostgresDocumentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDocumentRepository constructs the repository.
func NewPostgresDocumentRepository(pool *pgxpool.Pool) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{pool: pool}
}

func (r *PostgresDocumentRepository) Create(ctx context.Context, doc domain.Document) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ingest_documents (id, title, filename, mime_type, storage_key, status, failure_reason, study_set_id, use_taxonomy, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, doc.ID, doc.Title, doc.Filename, doc.MimeType, doc.StorageKey, doc.Status, doc.FailureReason, doc.StudySetID, doc.UseTaxonomy, doc.CreatedAt, doc.UpdatedAt)
	return err
}

func (r *PostgresDocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus, failureReason *string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE ingest_documents
		SET status = $1, failure_reason = $2, updated_at = NOW()
		WHERE id = $3
	`, status, failureReason, id)
	return err
}

func (r *PostgresDocumentRepository) AttachStudySet(ctx context.Context, id uuid.UUID, studySetID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE ingest_documents
		SET study_set_id = $1, updated_at = NOW()
		WHERE id = $2
	`, studySetID, id)
	return err
}

func (r *PostgresDocumentRepository) Get(ctx context.Context, id uuid.UUID) (domain.Document, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, filename, mime_type, storage_key, status, failure_reason, study_set_id, use_taxonomy, created_at, updated_at
		FROM ingest_documents
		WHERE id = $1
		LIMIT 1
	`, id)
	doc, err := scanDocument(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Document{}, false, nil
		}
		return domain.Document{}, false, err
	}
	return doc, true, nil
}

func (r *PostgresDocumentRepository) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, filename, mime_type, storage_key, status, failure_reason, study_set_id, use_taxonomy, created_at, updated_at
		FROM ingest_documents
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

var _ domain.DocumentRepository = (*PostgresDocumentRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (domain.Document, error) {
	var (
		doc           domain.Document
		failureReason *string
		studySetID    *uuid.UUID
	)
	if err := row.Scan(&doc.ID, &doc.Title, &doc.Filename, &doc.MimeType, &doc.StorageKey, &doc.Status, &failureReason, &studySetID, &doc.UseTaxonomy, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return domain.Document{}, err
	}
	doc.FailureReason = failureReason
	doc.StudySetID = studySetID
	return doc, nil
}
