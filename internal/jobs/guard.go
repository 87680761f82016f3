// Package jobs runs reply work: single on-demand replies, batch runs and the
// cron scheduler that triggers batches unattended.
package jobs

import (
	"context"
	"time"

	"github.com/sevigo/reply-warden/internal/core"
)

// Guard answers whether a review already has a reply. The check is not atomic
// with the insert that follows it; the unique constraint on replies.review_id
// rejects the loser of a race with core.ErrReplyExists.
type Guard struct {
	store core.ReviewStore
}

func NewGuard(store core.ReviewStore) *Guard {
	if store == nil {
		panic("review store cannot be nil")
	}
	return &Guard{store: store}
}

// Answered reports whether at least one reply exists for reviewID.
func (g *Guard) Answered(ctx context.Context, reviewID int64) (bool, error) {
	return g.store.HasReply(ctx, reviewID)
}

// Persister writes composed drafts as approved, threaded replies.
type Persister struct {
	store core.ReviewStore
	now   func() time.Time
}

func NewPersister(store core.ReviewStore) *Persister {
	if store == nil {
		panic("review store cannot be nil")
	}
	return &Persister{store: store, now: time.Now}
}

// Post creates the reply to review authored by actor and returns it with its
// assigned id.
func (p *Persister) Post(ctx context.Context, review *core.Review, actor core.Actor, draft core.Draft) (*core.Reply, error) {
	reply := core.NewReply(review, actor, draft.Text, p.now().UTC())
	id, err := p.store.InsertReply(ctx, reply)
	if err != nil {
		return nil, err
	}
	reply.ID = id
	return reply, nil
}
