package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"compass_sync/internal/domain"
)

type AnswerStore struct {
	db *sqlx.DB
}

func NewAnswerStore(db *sqlx.DB) *AnswerStore {
	return &AnswerStore{db: db}
}

type answerRow struct {
	ID           int64     `db:"id"`
	Topic        string    `db:"topic"`
	Lean         string    `db:"lean"`
	Rating       int       `db:"rating"`
	Description  string    `db:"description"`
	HasFinancial bool      `db:"has_financial_contributions"`
	PersistedAt  time.Time `db:"persisted_at"`
}

func (r answerRow) toDomain() domain.CachedAnswer {
	return domain.CachedAnswer{
		ID:                        r.ID,
		Topic:                     r.Topic,
		Lean:                      r.Lean,
		Rating:                    r.Rating,
		Description:               r.Description,
		HasFinancialContributions: r.HasFinancial,
		PersistedAt:               r.PersistedAt,
	}
}

const answerColumns = `id, topic, lean, rating, description, has_financial_contributions, persisted_at`

// UpsertPrimary inserts or overwrites the primary fields of the answer for
// rec.Topic. Financial rows are never touched. The returned bool is true
// when a new row was created.
func (s *AnswerStore) UpsertPrimary(ctx context.Context, rec *domain.LeaningRecord, persistedAt time.Time) (*domain.CachedAnswer, bool, error) {
	query := `
		INSERT INTO answers (
			topic, lean, rating, description, has_financial_contributions, persisted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		ON CONFLICT (topic) DO UPDATE SET
			lean = EXCLUDED.lean,
			rating = EXCLUDED.rating,
			description = EXCLUDED.description,
			has_financial_contributions = EXCLUDED.has_financial_contributions,
			persisted_at = EXCLUDED.persisted_at
		RETURNING ` + answerColumns + `, (xmax = 0) AS inserted`

	var row struct {
		answerRow
		Inserted bool `db:"inserted"`
	}
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query,
		rec.Topic,
		rec.Lean,
		rec.Rating,
		rec.Description,
		rec.HasFinancialContributions,
		persistedAt,
	)
	if err != nil {
		return nil, false, err
	}

	answer := row.answerRow.toDomain()
	return &answer, row.Inserted, nil
}

// LockIDByTopic returns the id of the answer for topic and, inside a
// transaction, locks the row until commit. found is false when no answer
// exists.
func (s *AnswerStore) LockIDByTopic(ctx context.Context, topic string) (id int64, found bool, err error) {
	query := `SELECT id FROM answers WHERE topic = $1`
	if GetTxFromContext(ctx) != nil {
		query += ` FOR UPDATE`
	}

	err = sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &id, query, topic)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// GetByTopic returns the answer for topic without its financial record, or
// nil when absent.
func (s *AnswerStore) GetByTopic(ctx context.Context, topic string) (*domain.CachedAnswer, error) {
	var row answerRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row,
		`SELECT `+answerColumns+` FROM answers WHERE topic = $1`, topic)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	answer := row.toDomain()
	return &answer, nil
}

// Delete removes the answer for topic; financial rows cascade. It reports
// whether a row existed.
func (s *AnswerStore) Delete(ctx context.Context, topic string) (bool, error) {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, `DELETE FROM answers WHERE topic = $1`, topic)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns every answer, most recently persisted first.
func (s *AnswerStore) List(ctx context.Context) ([]domain.CachedAnswer, error) {
	var rows []answerRow
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows,
		`SELECT `+answerColumns+` FROM answers ORDER BY persisted_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}

	answers := make([]domain.CachedAnswer, len(rows))
	for i, r := range rows {
		answers[i] = r.toDomain()
	}
	return answers, nil
}

// ListMissingFinancial returns topics flagged as having financial data
// that have none attached.
func (s *AnswerStore) ListMissingFinancial(ctx context.Context) ([]string, error) {
	query := `
		SELECT a.topic
		FROM answers a
		LEFT JOIN financial_contributions f ON f.answer_id = a.id
		WHERE a.has_financial_contributions AND f.id IS NULL
		ORDER BY a.persisted_at DESC, a.id DESC`

	var topics []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &topics, query)
	return topics, err
}
