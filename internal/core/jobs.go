package core

import (
	"context"
)

// ReplyRunner replies to one review on demand and reports precisely why
// nothing happened when it does not.
type ReplyRunner interface {
	Run(ctx context.Context, reviewID int64, actor Actor) Result
}

// BatchRunner replies to every unanswered candidate review in one pass.
// It only returns an error when no candidate could be processed at all.
type BatchRunner interface {
	Run(ctx context.Context, actor Actor) (BatchResult, error)
}
