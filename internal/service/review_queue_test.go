package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"recall_keep/internal/model"
	"recall_keep/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cards(ids ...string) []model.ReviewItem {
	items := make([]model.ReviewItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, model.ReviewItem{ID: id, Front: "front-" + id, Back: "back-" + id})
	}
	return items
}

func reviewOf(cardID string, quality int) interface{} {
	return mock.MatchedBy(func(req *model.SubmitReviewRequest) bool {
		return req.CardID == cardID && req.Quality != nil && *req.Quality == quality
	})
}

func newLoadedQueue(t *testing.T, repo *mocks.RecallRepository, maxRetries int, items []model.ReviewItem) *ReviewQueue {
	t.Helper()
	repo.On("FetchDue", mock.Anything).Return(items, nil).Once()
	q := NewReviewQueue(context.Background(), repo, testConfig(maxRetries), discardLogger())
	require.NoError(t, q.LoadQueue(context.Background()))
	return q
}

func TestReviewQueue_LoadQueue(t *testing.T) {
	tests := []struct {
		name      string
		items     []model.ReviewItem
		err       error
		wantState QueueState
		wantLen   int
	}{
		{name: "正常系: 2件取得", items: cards("a", "b"), wantState: StateShowingQuestion, wantLen: 2},
		{name: "正常系: 0件なら終了状態", items: []model.ReviewItem{}, wantState: StateEmpty, wantLen: 0},
		{name: "異常系: 取得失敗", err: model.NewAppError("Internal Server Error", "boom", "", model.ErrInternalServer), wantState: StateFailed, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.RecallRepository)
			repo.On("FetchDue", mock.Anything).Return(tt.items, tt.err).Once()
			q := NewReviewQueue(context.Background(), repo, testConfig(0), discardLogger())
			assert.Equal(t, StateLoading, q.State())

			err := q.LoadQueue(context.Background())
			if tt.err != nil {
				assert.ErrorIs(t, err, model.ErrInternalServer)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantState, q.State())
			assert.Equal(t, tt.wantLen, q.Len())
			repo.AssertExpectations(t)
		})
	}
}

func TestReviewQueue_LoadQueueOnlyOnce(t *testing.T) {
	repo := new(mocks.RecallRepository)
	q := newLoadedQueue(t, repo, 0, cards("a"))

	require.NoError(t, q.LoadQueue(context.Background()))
	repo.AssertNumberOfCalls(t, "FetchDue", 1)
}

func TestReviewQueue_LoadQueueRetryAfterFailure(t *testing.T) {
	repo := new(mocks.RecallRepository)
	repo.On("FetchDue", mock.Anything).Return(nil, model.ErrTransport).Once()
	repo.On("FetchDue", mock.Anything).Return(cards("a"), nil).Once()
	q := NewReviewQueue(context.Background(), repo, testConfig(0), discardLogger())

	require.Error(t, q.LoadQueue(context.Background()))
	assert.Equal(t, StateFailed, q.State())
	require.NoError(t, q.LoadQueue(context.Background()))
	assert.Equal(t, StateShowingQuestion, q.State())
}

func TestReviewQueue_PeekIsReadOnly(t *testing.T) {
	repo := new(mocks.RecallRepository)
	q := newLoadedQueue(t, repo, 0, cards("a", "b"))

	for i := 0; i < 3; i++ {
		head, ok := q.Peek()
		require.True(t, ok)
		assert.Equal(t, "a", head.ID)
	}
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, StateShowingQuestion, q.State())
	repo.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything)
}

func TestReviewQueue_SubmitAdvancesThroughSequence(t *testing.T) {
	ids := []string{"c1", "c2", "c3", "c4", "c5"}
	repo := new(mocks.RecallRepository)
	q := newLoadedQueue(t, repo, 0, cards(ids...))
	repo.On("SubmitReview", mock.Anything, mock.Anything).Return(nil)

	for i, id := range ids {
		head, ok := q.Peek()
		require.True(t, ok)
		assert.Equal(t, id, head.ID)

		removed, err := q.SubmitReview(i % 6)
		require.NoError(t, err)
		assert.Equal(t, id, removed.ID)
		assert.Equal(t, len(ids)-i-1, q.Len())

		if i+1 < len(ids) {
			next, ok := q.Peek()
			require.True(t, ok)
			assert.Equal(t, ids[i+1], next.ID)
		}
	}
	q.Wait()

	assert.Equal(t, StateEmpty, q.State())
	repo.AssertNumberOfCalls(t, "SubmitReview", len(ids))
}

func TestReviewQueue_SubmitReviewScenario(t *testing.T) {
	repo := new(mocks.RecallRepository)
	q := newLoadedQueue(t, repo, 0, cards("a", "b"))
	repo.On("SubmitReview", mock.Anything, reviewOf("a", 4)).Return(nil).Once()

	_, err := q.SubmitReview(4)
	require.NoError(t, err)

	head, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, "b", head.ID)
	assert.Equal(t, 1, q.Len())

	q.Wait()
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "SubmitReview", 1)
}

func TestReviewQueue_SubmitDoesNotWaitForNetwork(t *testing.T) {
	repo := new(mocks.RecallRepository)
	q := newLoadedQueue(t, repo, 0, cards("a", "b"))

	release := make(chan struct{})
	repo.On("SubmitReview", mock.Anything, reviewOf("a", 3)).
		Run(func(args mock.Arguments) { <-release }).
		Return(nil).Once()

	_, err := q.SubmitReview(3)
	require.NoError(t, err)
	// 送信がブロックしていてもキューは進んでいる
	head, _ := q.Peek()
	assert.Equal(t, "b", head.ID)

	close(release)
	q.Wait()
	repo.AssertExpectations(t)
}

func TestReviewQueue_FailedSubmitStaysDropped(t *testing.T) {
	repo := new(mocks.RecallRepository)
	q := newLoadedQueue(t, repo, 0, cards("a", "b"))
	repo.On("SubmitReview", mock.Anything, reviewOf("a", 2)).
		Return(fmt.Errorf("wrapped: %w", model.ErrInternalServer)).Once()

	_, err := q.SubmitReview(2)
	require.NoError(t, err)
	q.Wait()

	head, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, "b", head.ID)
	assert.Equal(t, 1, q.Len())
	repo.AssertNumberOfCalls(t, "SubmitReview", 1)
}

func TestReviewQueue_BoundedRetry(t *testing.T) {
	tests := []struct {
		name       string
		maxRetries int
		errs       []error
		wantCalls  int
	}{
		{name: "正常系: 通信失敗後に成功", maxRetries: 2, errs: []error{model.ErrTransport, model.ErrTransport, nil}, wantCalls: 3},
		{name: "異常系: 上限で打ち切り", maxRetries: 1, errs: []error{model.ErrInternalServer, model.ErrInternalServer}, wantCalls: 2},
		{name: "異常系: 4xxは再試行しない", maxRetries: 3, errs: []error{model.ErrInvalidInput}, wantCalls: 1},
		{name: "正常系: 既定では再試行なし", maxRetries: 0, errs: []error{model.ErrTransport}, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.RecallRepository)
			q := newLoadedQueue(t, repo, tt.maxRetries, cards("a"))
			for _, err := range tt.errs {
				repo.On("SubmitReview", mock.Anything, reviewOf("a", 5)).Return(err).Once()
			}

			_, err := q.SubmitReview(5)
			require.NoError(t, err)
			q.Wait()

			repo.AssertNumberOfCalls(t, "SubmitReview", tt.wantCalls)
		})
	}
}

func TestReviewQueue_EmptyIsTerminal(t *testing.T) {
	repo := new(mocks.RecallRepository)
	q := newLoadedQueue(t, repo, 0, []model.ReviewItem{})

	_, ok := q.Peek()
	assert.False(t, ok)
	_, err := q.SubmitReview(3)
	assert.ErrorIs(t, err, model.ErrQueueEmpty)
	assert.ErrorIs(t, q.Reveal(), model.ErrQueueEmpty)
	require.NoError(t, q.LoadQueue(context.Background()))

	q.Wait()
	assert.Equal(t, StateEmpty, q.State())
	repo.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything)
	repo.AssertNumberOfCalls(t, "FetchDue", 1)
}

func TestReviewQueue_RevealAndInvalidQuality(t *testing.T) {
	repo := new(mocks.RecallRepository)
	q := newLoadedQueue(t, repo, 0, cards("a", "b"))

	require.NoError(t, q.Reveal())
	assert.Equal(t, StateShowingAnswer, q.State())

	_, err := q.SubmitReview(7)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, StateShowingAnswer, q.State())

	repo.On("SubmitReview", mock.Anything, reviewOf("a", 0)).Return(nil).Once()
	_, err = q.SubmitReview(0)
	require.NoError(t, err)
	assert.Equal(t, StateShowingQuestion, q.State())
	q.Wait()
	repo.AssertExpectations(t)
}

func TestReviewQueue_NotReadyBeforeLoad(t *testing.T) {
	repo := new(mocks.RecallRepository)
	q := NewReviewQueue(context.Background(), repo, testConfig(0), discardLogger())

	_, err := q.SubmitReview(3)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
	assert.ErrorIs(t, q.Reveal(), model.ErrInvalidInput)
	repo.AssertNotCalled(t, "SubmitReview", mock.Anything, mock.Anything)
}

func TestReviewQueue_CancelledContextStopsRetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := new(mocks.RecallRepository)
	repo.On("FetchDue", mock.Anything).Return(cards("a"), nil).Once()
	cfg := testConfig(5)
	cfg.Review.RetryBackoff = time.Hour
	q := NewReviewQueue(ctx, repo, cfg, discardLogger())
	require.NoError(t, q.LoadQueue(context.Background()))

	repo.On("SubmitReview", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { cancel() }).
		Return(model.ErrTransport).Once()

	_, err := q.SubmitReview(1)
	require.NoError(t, err)
	q.Wait()
	repo.AssertNumberOfCalls(t, "SubmitReview", 1)
}

func TestReviewQueue_SkipsCardWithoutID(t *testing.T) {
	repo := new(mocks.RecallRepository)
	q := newLoadedQueue(t, repo, 0, []model.ReviewItem{{ID: "", Front: "壊れたカード"}, {ID: "b", Front: "front-b"}})
	repo.On("SubmitReview", mock.Anything, reviewOf("b", 2)).Return(nil).Once()

	removed, err := q.SubmitReview(4)
	require.NoError(t, err)
	assert.Equal(t, "壊れたカード", removed.Front)

	head, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, "b", head.ID)
	assert.Equal(t, 1, q.Len())

	_, err = q.SubmitReview(2)
	require.NoError(t, err)
	q.Wait()

	assert.Equal(t, StateEmpty, q.State())
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "SubmitReview", 1)
}

func TestReviewQueue_WaitWhileSubmitting(t *testing.T) {
	ids := make([]string, 50)
	for i := range ids {
		ids[i] = fmt.Sprintf("c%d", i)
	}
	repo := new(mocks.RecallRepository)
	q := newLoadedQueue(t, repo, 0, cards(ids...))
	repo.On("SubmitReview", mock.Anything, mock.Anything).Return(nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range ids {
			q.Wait()
		}
	}()
	for range ids {
		_, err := q.SubmitReview(3)
		require.NoError(t, err)
	}
	<-done
	q.Wait()

	assert.Equal(t, StateEmpty, q.State())
	repo.AssertNumberOfCalls(t, "SubmitReview", len(ids))
}
