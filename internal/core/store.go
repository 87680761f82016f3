package core

import (
	"context"
	"errors"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReplyExists    = errors.New("review already has a reply")
)

// MaxBatchSize caps how many candidates a single batch run may process.
const MaxBatchSize = 200

// CandidateFilter narrows the reviews returned by ReviewStore.ListCandidates.
// Candidates are always approved product reviews ordered oldest first.
type CandidateFilter struct {
	Limit          int
	UnansweredOnly bool
}

// ReviewStore is the persistence boundary for reviews and their replies.
//
//go:generate mockgen -destination=../../mocks/mock_review_store.go -package=mocks . ReviewStore
type ReviewStore interface {
	// ListCandidates returns approved product reviews, ascending by creation time.
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]*Review, error)
	// GetReview returns ErrReviewNotFound when no review has the given id.
	GetReview(ctx context.Context, id int64) (*Review, error)
	// HasReply reports whether at least one reply exists for the review.
	HasReply(ctx context.Context, reviewID int64) (bool, error)
	// InsertReply persists a reply and returns its id. It returns ErrReplyExists
	// when the store already holds a reply for the same review.
	InsertReply(ctx context.Context, reply *Reply) (int64, error)
}
