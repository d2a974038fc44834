package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"recall_keep/internal/config"
	"recall_keep/internal/middleware"
	"recall_keep/internal/model"
	"recall_keep/internal/repository"
	"recall_keep/internal/webutil"

	"github.com/cenkalti/backoff/v4"
)

// QueueState は復習画面の状態です。
// Loading → ShowingQuestion → ShowingAnswer → (繰り返し) → Empty。初回取得に失敗すると Failed。
type QueueState int

const (
	StateLoading QueueState = iota
	StateShowingQuestion
	StateShowingAnswer
	StateEmpty
	StateFailed
)

func (s QueueState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateShowingQuestion:
		return "question"
	case StateShowingAnswer:
		return "answer"
	case StateEmpty:
		return "empty"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("QueueState(%d)", int(s))
	}
}

// ReviewQueue は期限の来たカードを先頭から1枚ずつ消費するローカルキューです。
// SubmitReview はキューを先に進めてから送信を開始し、送信結果を待ちません。
// 送信に失敗したカードはこのセッションでは二度と表示されません。
type ReviewQueue struct {
	mu     sync.Mutex
	items  []model.ReviewItem
	state  QueueState
	loaded bool

	repo    repository.RecallRepository
	cfg     *config.Config
	logger  *slog.Logger
	baseCtx context.Context
	wg      sync.WaitGroup
}

// NewReviewQueue は ctx をバックグラウンド送信の親コンテキストとして使います。
// ctx がキャンセルされると、送信中のリトライも打ち切られます。
func NewReviewQueue(ctx context.Context, repo repository.RecallRepository, cfg *config.Config, logger *slog.Logger) *ReviewQueue {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "review_queue"))
	return &ReviewQueue{
		repo:    repo,
		cfg:     cfg,
		logger:  logger,
		baseCtx: middleware.WithLogger(ctx, logger),
		state:   StateLoading,
	}
}

// LoadQueue は期限の来たカードをまとめて1回だけ取得します。
// 取得済みのキューに対しては何もしません。失敗した場合は再度呼べます。
func (q *ReviewQueue) LoadQueue(ctx context.Context) error {
	q.mu.Lock()
	if q.loaded {
		q.mu.Unlock()
		return nil
	}
	q.state = StateLoading
	q.mu.Unlock()

	items, err := q.repo.FetchDue(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	if err != nil {
		q.state = StateFailed
		q.logger.Error("Failed to load due cards", slog.Any("error", err))
		return err
	}

	q.items = items
	q.loaded = true
	if len(q.items) == 0 {
		q.state = StateEmpty
	} else {
		q.state = StateShowingQuestion
	}
	q.logger.Info("Due cards loaded", slog.Int("count", len(items)))
	return nil
}

// Peek は先頭のカードを取り出さずに返します。
func (q *ReviewQueue) Peek() (model.ReviewItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return model.ReviewItem{}, false
	}
	return q.items[0], true
}

// Reveal は表示中のカードの答えを表示状態にします。
func (q *ReviewQueue) Reveal() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	switch q.state {
	case StateShowingQuestion, StateShowingAnswer:
		q.state = StateShowingAnswer
		return nil
	case StateEmpty:
		return model.ErrQueueEmpty
	default:
		return notReadyError(q.state)
	}
}

// SubmitReview は先頭のカードを取り除いて次のカードへ進め、その後で評価の送信を開始します。
// 戻り値は取り除いたカードです。送信の成否は呼び出し元に返りません。
func (q *ReviewQueue) SubmitReview(quality int) (model.ReviewItem, error) {
	q.mu.Lock()
	switch q.state {
	case StateShowingQuestion, StateShowingAnswer:
	case StateEmpty:
		q.mu.Unlock()
		return model.ReviewItem{}, model.ErrQueueEmpty
	default:
		state := q.state
		q.mu.Unlock()
		return model.ReviewItem{}, notReadyError(state)
	}

	head := q.items[0]
	req := &model.SubmitReviewRequest{CardID: head.ID, Quality: &quality}
	if err := webutil.ValidateFields(req, "Quality"); err != nil {
		q.mu.Unlock()
		return model.ReviewItem{}, err
	}

	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.state = StateEmpty
	} else {
		q.state = StateShowingQuestion
	}
	if head.ID == "" {
		q.mu.Unlock()
		// IDが無いカードは送信先が無いので読み飛ばすだけにする
		q.logger.Warn("Due card without id skipped", slog.String("front", head.Front))
		return head, nil
	}
	q.wg.Add(1)
	q.mu.Unlock()

	go q.send(req)
	return head, nil
}

// State は現在の状態を返します。
func (q *ReviewQueue) State() QueueState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Len は残りのカード枚数です。
func (q *ReviewQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Wait は送信中の評価がすべて終わるまで待ちます。終了処理とテストで使います。
func (q *ReviewQueue) Wait() {
	q.wg.Wait()
}

// send はバックグラウンドで評価を送信します。失敗はログに残すだけです。
func (q *ReviewQueue) send(req *model.SubmitReviewRequest) {
	defer q.wg.Done()

	logger := q.logger.With(slog.String("card_id", req.CardID), slog.Int("quality", *req.Quality))

	attempt := 0
	operation := func() error {
		attempt++
		ctx, cancel := context.WithTimeout(q.baseCtx, q.cfg.API.Timeout)
		defer cancel()
		err := q.repo.SubmitReview(ctx, req)
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logger.Info("Review submission failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.Any("error", err),
		)
	}

	if err := backoff.RetryNotify(operation, q.retryPolicy(), notify); err != nil {
		// ローカルでは既に次へ進んでいるので、ここで落ちた評価は復元しない
		logger.Warn("Review submission dropped", slog.Int("attempt", attempt), slog.Any("error", err))
		return
	}
	logger.Debug("Review submitted", slog.Int("attempt", attempt))
}

// retryPolicy は review.max_retries 回までの指数バックオフです。0 なら再試行しません。
// baseCtx が終わった時点で打ち切ります。
func (q *ReviewQueue) retryPolicy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = q.cfg.Review.RetryBackoff
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(q.cfg.Review.MaxRetries)), q.baseCtx)
}

// isRetryable は通信失敗と5xxだけを再試行対象にします。
func isRetryable(err error) bool {
	return errors.Is(err, model.ErrTransport) || errors.Is(err, model.ErrInternalServer)
}

func notReadyError(state QueueState) error {
	return model.NewAppError("QUEUE_NOT_READY", fmt.Sprintf("キューはまだ操作できません (%s)。", state), "", model.ErrInvalidInput)
}
