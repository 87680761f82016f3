// Package storage implements core.ReviewStore on top of Postgres.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sevigo/reply-warden/internal/core"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = pq.ErrorCode("23505")

const reviewColumns = `
	r.id, r.product_id, COALESCE(p.title, '') AS product_title,
	COALESCE(p.post_type, '') AS product_type, r.kind, r.author_name,
	r.author_email, r.body, r.rating, r.approved, r.created_at`

type postgresStore struct {
	db *sqlx.DB
}

// NewStore creates a new core.ReviewStore backed by db.
func NewStore(db *sqlx.DB) core.ReviewStore {
	return &postgresStore{db: db}
}

// ListCandidates returns approved product reviews, oldest first.
func (s *postgresStore) ListCandidates(ctx context.Context, filter core.CandidateFilter) ([]*core.Review, error) {
	query, args := candidateQuery(filter)

	var reviews []*core.Review
	if err := s.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list candidate reviews: %w", err)
	}
	return reviews, nil
}

func candidateQuery(filter core.CandidateFilter) (string, []any) {
	limit := filter.Limit
	if limit <= 0 || limit > core.MaxBatchSize {
		limit = core.MaxBatchSize
	}

	var b strings.Builder
	b.WriteString(`SELECT` + reviewColumns + `
		FROM reviews r
		JOIN products p ON p.id = r.product_id
		WHERE r.kind = $1 AND r.approved AND p.post_type = $2`)
	if filter.UnansweredOnly {
		b.WriteString(`
		AND NOT EXISTS (SELECT 1 FROM replies rp WHERE rp.review_id = r.id)`)
	}
	b.WriteString(`
		ORDER BY r.created_at ASC, r.id ASC
		LIMIT $3`)

	return b.String(), []any{core.ReviewKind, core.ProductType, limit}
}

// GetReview fetches a single review with its product. Reviews whose product row
// is gone are still returned; IsProductReview reports false for them.
func (s *postgresStore) GetReview(ctx context.Context, id int64) (*core.Review, error) {
	query := `SELECT` + reviewColumns + `
		FROM reviews r
		LEFT JOIN products p ON p.id = r.product_id
		WHERE r.id = $1`

	var r core.Review
	if err := s.db.GetContext(ctx, &r, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("review %d: %w", id, core.ErrReviewNotFound)
		}
		return nil, fmt.Errorf("failed to get review %d: %w", id, err)
	}
	return &r, nil
}

func (s *postgresStore) HasReply(ctx context.Context, reviewID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM replies WHERE review_id = $1)`, reviewID)
	if err != nil {
		return false, fmt.Errorf("failed to check replies for review %d: %w", reviewID, err)
	}
	return exists, nil
}

// InsertReply persists reply and returns its new id.
func (s *postgresStore) InsertReply(ctx context.Context, reply *core.Reply) (int64, error) {
	query := `
		INSERT INTO replies (review_id, product_id, author_user_id, author_name, author_email, body, approved, created_at)
		VALUES (:review_id, :product_id, :author_user_id, :author_name, :author_email, :body, :approved, :created_at)
		RETURNING id`

	stmt, err := s.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare reply insert: %w", err)
	}
	defer stmt.Close()

	var id int64
	if err := stmt.GetContext(ctx, &id, reply); err != nil {
		return 0, mapInsertError(reply.ReviewID, err)
	}
	reply.ID = id
	return id, nil
}

func mapInsertError(reviewID int64, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("review %d: %w", reviewID, core.ErrReplyExists)
	}
	return fmt.Errorf("failed to insert reply for review %d: %w", reviewID, err)
}
