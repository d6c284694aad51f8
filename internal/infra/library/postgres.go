package library

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	domain "github.com/edubot/edubot-backend/internal/domain/library"
	"github.com/edubot/edubot-backend/internal/domain/studycards"
)

// PostgresStudySetRepository persists study sets in Postgres with the
// summary embedding in a pgvector column.
type PostgresStudySetRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresStudySetRepository constructs the repository.
func NewPostgresStudySetRepository(pool *pgxpool.Pool) *PostgresStudySetRepository {
	return &PostgresStudySetRepository{pool: pool}
}

func (r *PostgresStudySetRepository) Create(ctx context.Context, set domain.StudySet) error {
	flashcards, err := json.Marshal(set.Flashcards)
	if err != nil {
		return err
	}
	var embedding any
	if len(set.SummaryEmbedding) > 0 {
		embedding = pgvector.NewVector(set.SummaryEmbedding)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO study_sets (id, title, summary, flashcards, source_chars, summary_embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, set.ID, set.Title, set.Summary, flashcards, set.SourceChars, embedding, set.CreatedAt)
	return err
}

func (r *PostgresStudySetRepository) Get(ctx context.Context, id uuid.UUID) (domain.StudySet, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, summary, flashcards, source_chars, summary_embedding, created_at
		FROM study_sets
		WHERE id = $1
		LIMIT 1
	`, id)
	set, err := scanStudySet(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.StudySet{}, false, nil
		}
		return domain.StudySet{}, false, err
	}
	return set, true, nil
}

func (r *PostgresStudySetRepository) List(ctx context.Context) ([]domain.StudySet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, summary, flashcards, source_chars, summary_embedding, created_at
		FROM study_sets
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []domain.StudySet
	for rows.Next() {
		set, err := scanStudySet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

func (r *PostgresStudySetRepository) FindSimilar(ctx context.Context, embedding []float32, exclude uuid.UUID, limit int) ([]domain.RelatedStudySet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			id, title, summary, flashcards, source_chars, summary_embedding, created_at,
			(1.0 / (1.0 + (summary_embedding <-> $1))) AS score
		FROM study_sets
		WHERE id <> $2 AND summary_embedding IS NOT NULL
		ORDER BY (summary_embedding <-> $1) ASC
		LIMIT $3
	`, pgvector.NewVector(embedding), exclude, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var related []domain.RelatedStudySet
	for rows.Next() {
		var (
			set          domain.StudySet
			rawCards     []byte
			embeddingRaw any
			score        float64
		)
		if err := rows.Scan(&set.ID, &set.Title, &set.Summary, &rawCards, &set.SourceChars, &embeddingRaw, &set.CreatedAt, &score); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawCards, &set.Flashcards); err != nil {
			return nil, err
		}
		parsed, err := normalizeEmbedding(embeddingRaw)
		if err != nil {
			return nil, err
		}
		set.SummaryEmbedding = parsed
		related = append(related, domain.RelatedStudySet{Set: set, Score: score})
	}
	return related, rows.Err()
}

var _ domain.StudySetRepository = (*PostgresStudySetRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudySet(row rowScanner) (domain.StudySet, error) {
	var (
		set          domain.StudySet
		rawCards     []byte
		embeddingRaw any
	)
	if err := row.Scan(&set.ID, &set.Title, &set.Summary, &rawCards, &set.SourceChars, &embeddingRaw, &set.CreatedAt); err != nil {
		return domain.StudySet{}, err
	}
	if len(rawCards) > 0 {
		if err := json.Unmarshal(rawCards, &set.Flashcards); err != nil {
			return domain.StudySet{}, err
		}
	}
	if set.Flashcards == nil {
		set.Flashcards = []studycards.Flashcard{}
	}
	if embeddingRaw != nil {
		parsed, err := normalizeEmbedding(embeddingRaw)
		if err != nil {
			return domain.StudySet{}, err
		}
		set.SummaryEmbedding = parsed
	}
	return set, nil
}

func normalizeEmbedding(raw any) ([]float32, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case pgvector.Vector:
		return append([]float32(nil), v.Slice()...), nil
	case []float32:
		return append([]float32(nil), v...), nil
	case []float64:
		out := make([]float32, len(v))
		for i, f := range v {
			out[i] = float32(f)
		}
		return out, nil
	case string:
		trimmed := strings.TrimSpace(v)
		trimmed = strings.TrimPrefix(trimmed, "[")
		trimmed = strings.TrimSuffix(trimmed, "]")
		if trimmed == "" {
			return nil, nil
		}
		parts := strings.Split(trimmed, ",")
		out := make([]float32, 0, len(parts))
		for _, p := range parts {
			numStr := strings.TrimSpace(p)
			if numStr == "" {
				continue
			}
			f, err := strconv.ParseFloat(numStr, 32)
			if err != nil {
				return nil, err
			}
			out = append(out, float32(f))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported embedding type %T", raw)
	}
}
