package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/sevigo/reply-warden/internal/core"
)

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory core.ReviewStore that enforces one reply per review.
type memStore struct {
	mu         sync.Mutex
	reviews    map[int64]*core.Review
	replies    map[int64]*core.Reply
	nextID     int64
	failInsert map[int64]bool
	listErr    error
	// honorCtx makes InsertReply fail on a done context like a database driver.
	honorCtx bool
}

func newMemStore(reviews ...*core.Review) *memStore {
	s := &memStore{
		reviews:    make(map[int64]*core.Review),
		replies:    make(map[int64]*core.Reply),
		failInsert: make(map[int64]bool),
	}
	for _, r := range reviews {
		s.reviews[r.ID] = r
	}
	return s
}

func (s *memStore) ListCandidates(_ context.Context, filter core.CandidateFilter) ([]*core.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}

	var out []*core.Review
	for _, r := range s.reviews {
		if !r.IsProductReview() || !r.Approved {
			continue
		}
		if _, ok := s.replies[r.ID]; ok && filter.UnansweredOnly {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *memStore) GetReview(_ context.Context, id int64) (*core.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return nil, core.ErrReviewNotFound
	}
	return r, nil
}

func (s *memStore) HasReply(_ context.Context, reviewID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.replies[reviewID]
	return ok, nil
}

func (s *memStore) InsertReply(ctx context.Context, reply *core.Reply) (int64, error) {
	if s.honorCtx && ctx.Err() != nil {
		return 0, ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInsert[reply.ReviewID] {
		return 0, errBoom
	}
	if _, ok := s.replies[reply.ReviewID]; ok {
		return 0, core.ErrReplyExists
	}
	s.nextID++
	stored := *reply
	stored.ID = s.nextID
	s.replies[reply.ReviewID] = &stored
	return stored.ID, nil
}

func (s *memStore) reply(reviewID int64) *core.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replies[reviewID]
}

func (s *memStore) replyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.replies)
}

// productReview builds an approved product review created offset minutes after
// a fixed base time.
func productReview(id int64, rating int, body string, offset int) *core.Review {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &core.Review{
		ID:           id,
		ProductID:    100 + id,
		ProductTitle: "Walnut Desk Lamp",
		ProductType:  core.ProductType,
		Kind:         core.ReviewKind,
		AuthorName:   "Dana",
		Body:         body,
		Rating:       rating,
		Approved:     true,
		CreatedAt:    base.Add(time.Duration(offset) * time.Minute),
	}
}

type stubComposer struct {
	mu      sync.Mutex
	draft   core.Draft
	configs []core.GenerationConfig
}

func (c *stubComposer) Compose(_ context.Context, cfg core.GenerationConfig, _ *core.Review) core.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configs = append(c.configs, cfg)
	if c.draft.Text == "" {
		return core.Draft{Text: "Thanks for your review!", Source: core.SourceFallback, Sentiment: core.Positive}
	}
	return c.draft
}

type stubSettings struct {
	cfg core.GenerationConfig
	err error
}

func (s stubSettings) GenerationConfig(context.Context) (core.GenerationConfig, error) {
	return s.cfg, s.err
}

// cancellingComposer cancels the run context while composing the first draft.
type cancellingComposer struct {
	stubComposer
	cancel context.CancelFunc
}

func (c *cancellingComposer) Compose(ctx context.Context, cfg core.GenerationConfig, review *core.Review) core.Draft {
	c.cancel()
	return c.stubComposer.Compose(ctx, cfg, review)
}
