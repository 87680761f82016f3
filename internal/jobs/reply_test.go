package jobs

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/reply-warden/internal/core"
	"github.com/sevigo/reply-warden/mocks"
)

var testActor = core.Actor{UserID: 1, DisplayName: "Shop Team", Email: "team@example.com"}

func TestReplyJob_Run(t *testing.T) {
	ctx := context.Background()
	review := productReview(42, 5, "Lovely lamp", 0)
	comment := productReview(43, 5, "Nice", 0)
	comment.Kind = "comment"
	page := productReview(44, 5, "Nice", 0)
	page.ProductType = "page"

	tests := []struct {
		name     string
		reviewID int64
		setup    func(s *mocks.MockReviewStore)
		want     core.Outcome
		message  string
	}{
		{
			name:     "zero id",
			reviewID: 0,
			setup:    func(*mocks.MockReviewStore) {},
			want:     core.OutcomeInvalidRequest,
			message:  "Invalid request.",
		},
		{
			name:     "negative id",
			reviewID: -5,
			setup:    func(*mocks.MockReviewStore) {},
			want:     core.OutcomeInvalidRequest,
			message:  "Invalid request.",
		},
		{
			name:     "missing review",
			reviewID: 42,
			setup: func(s *mocks.MockReviewStore) {
				s.EXPECT().GetReview(gomock.Any(), int64(42)).Return(nil, fmt.Errorf("review 42: %w", core.ErrReviewNotFound))
			},
			want:    core.OutcomeNotFound,
			message: "Review not found.",
		},
		{
			name:     "plain comment",
			reviewID: 43,
			setup: func(s *mocks.MockReviewStore) {
				s.EXPECT().GetReview(gomock.Any(), int64(43)).Return(comment, nil)
			},
			want: core.OutcomeNotFound,
		},
		{
			name:     "review on non-product",
			reviewID: 44,
			setup: func(s *mocks.MockReviewStore) {
				s.EXPECT().GetReview(gomock.Any(), int64(44)).Return(page, nil)
			},
			want: core.OutcomeNotFound,
		},
		{
			name:     "lookup failure",
			reviewID: 42,
			setup: func(s *mocks.MockReviewStore) {
				s.EXPECT().GetReview(gomock.Any(), int64(42)).Return(nil, errBoom)
			},
			want:    core.OutcomePersistenceFailure,
			message: "Could not save reply.",
		},
		{
			name:     "already answered",
			reviewID: 42,
			setup: func(s *mocks.MockReviewStore) {
				s.EXPECT().GetReview(gomock.Any(), int64(42)).Return(review, nil)
				s.EXPECT().HasReply(gomock.Any(), int64(42)).Return(true, nil)
			},
			want:    core.OutcomeConflict,
			message: "This review already has a reply.",
		},
		{
			name:     "guard failure",
			reviewID: 42,
			setup: func(s *mocks.MockReviewStore) {
				s.EXPECT().GetReview(gomock.Any(), int64(42)).Return(review, nil)
				s.EXPECT().HasReply(gomock.Any(), int64(42)).Return(false, errBoom)
			},
			want: core.OutcomePersistenceFailure,
		},
		{
			name:     "lost insert race",
			reviewID: 42,
			setup: func(s *mocks.MockReviewStore) {
				s.EXPECT().GetReview(gomock.Any(), int64(42)).Return(review, nil)
				s.EXPECT().HasReply(gomock.Any(), int64(42)).Return(false, nil)
				s.EXPECT().InsertReply(gomock.Any(), gomock.Any()).Return(int64(0), fmt.Errorf("review 42: %w", core.ErrReplyExists))
			},
			want: core.OutcomeConflict,
		},
		{
			name:     "insert failure",
			reviewID: 42,
			setup: func(s *mocks.MockReviewStore) {
				s.EXPECT().GetReview(gomock.Any(), int64(42)).Return(review, nil)
				s.EXPECT().HasReply(gomock.Any(), int64(42)).Return(false, nil)
				s.EXPECT().InsertReply(gomock.Any(), gomock.Any()).Return(int64(0), errBoom)
			},
			want:    core.OutcomePersistenceFailure,
			message: "Could not save reply.",
		},
		{
			name:     "success",
			reviewID: 42,
			setup: func(s *mocks.MockReviewStore) {
				s.EXPECT().GetReview(gomock.Any(), int64(42)).Return(review, nil)
				s.EXPECT().HasReply(gomock.Any(), int64(42)).Return(false, nil)
				s.EXPECT().InsertReply(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *core.Reply) (int64, error) {
					assert.Equal(t, int64(42), r.ReviewID)
					assert.Equal(t, review.ProductID, r.ProductID)
					assert.Equal(t, testActor.UserID, r.AuthorUserID)
					assert.Equal(t, "Shop Team", r.AuthorName)
					assert.True(t, r.Approved)
					assert.Equal(t, "Thanks for your review!", r.Body)
					return 7, nil
				})
			},
			want:    core.OutcomeSuccess,
			message: "Reply posted.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockReviewStore(ctrl)
			tt.setup(store)

			job := NewReplyJob(store, &stubComposer{}, stubSettings{}, nil, discardLogger())
			res := job.Run(ctx, tt.reviewID, testActor)

			assert.Equal(t, tt.want, res.Outcome)
			if tt.message != "" {
				assert.Equal(t, tt.message, res.Message)
			}
			assert.Equal(t, tt.want == core.OutcomeSuccess, res.OK())
		})
	}
}

func TestReplyJob_SecondRequestConflicts(t *testing.T) {
	store := newMemStore(productReview(1, 5, "Great", 0))
	job := NewReplyJob(store, &stubComposer{}, stubSettings{}, nil, discardLogger())

	first := job.Run(context.Background(), 1, testActor)
	second := job.Run(context.Background(), 1, testActor)

	assert.Equal(t, core.OutcomeSuccess, first.Outcome)
	assert.Equal(t, core.OutcomeConflict, second.Outcome)
	assert.Equal(t, 1, store.replyCount())
}

func TestReplyJob_ConcurrentRequestsPostOnce(t *testing.T) {
	store := newMemStore(productReview(1, 5, "Great", 0))
	job := NewReplyJob(store, &stubComposer{}, stubSettings{}, nil, discardLogger())

	const workers = 16
	results := make([]core.Result, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = job.Run(context.Background(), 1, testActor)
		}()
	}
	wg.Wait()

	var ok int
	for _, res := range results {
		if res.OK() {
			ok++
			continue
		}
		assert.Equal(t, core.OutcomeConflict, res.Outcome)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, store.replyCount())
}

func TestReplyJob_SettingsFailureDisablesGeneration(t *testing.T) {
	store := newMemStore(productReview(1, 2, "Meh", 0))
	composer := &stubComposer{}
	settings := stubSettings{cfg: core.GenerationConfig{APIKey: "sk-test"}, err: errBoom}

	res := NewReplyJob(store, composer, settings, nil, discardLogger()).Run(context.Background(), 1, testActor)

	require.Equal(t, core.OutcomeSuccess, res.Outcome)
	require.Len(t, composer.configs, 1)
	assert.False(t, composer.configs[0].Enabled())
}

func TestReplyJob_PassesSettingsToComposer(t *testing.T) {
	store := newMemStore(productReview(1, 5, "Great", 0))
	composer := &stubComposer{}
	cfg := core.GenerationConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BrandVoice: "Warm."}

	NewReplyJob(store, composer, stubSettings{cfg: cfg}, nil, discardLogger()).Run(context.Background(), 1, testActor)

	require.Len(t, composer.configs, 1)
	assert.Equal(t, cfg, composer.configs[0])
}

func TestNewReplyJob_PanicsOnNil(t *testing.T) {
	store := newMemStore()
	assert.Panics(t, func() { NewReplyJob(nil, &stubComposer{}, stubSettings{}, nil, discardLogger()) })
	assert.Panics(t, func() { NewReplyJob(store, nil, stubSettings{}, nil, discardLogger()) })
	assert.Panics(t, func() { NewReplyJob(store, &stubComposer{}, nil, nil, discardLogger()) })
	assert.Panics(t, func() { NewReplyJob(store, &stubComposer{}, stubSettings{}, nil, nil) })
}
