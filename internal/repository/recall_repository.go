// internal/repository/recall_repository.go
package repository

import (
	"context"
	"fmt"
	"net/http"

	"recall_keep/internal/model"
)

const (
	recallDuePath    = "/api/recall/due"
	recallReviewPath = "/api/recall/review"
	recallStatsPath  = "/api/recall/stats"
)

type RecallRepository interface {
	FetchDue(ctx context.Context) ([]model.ReviewItem, error)
	SubmitReview(ctx context.Context, req *model.SubmitReviewRequest) error
	FetchStats(ctx context.Context) (*model.ReviewStats, error)
}

type httpRecallRepository struct {
	rest restClient
}

func NewHTTPRecallRepository(client *http.Client, baseURL string) RecallRepository {
	return &httpRecallRepository{rest: newRestClient(client, baseURL)}
}

func (r *httpRecallRepository) FetchDue(ctx context.Context) ([]model.ReviewItem, error) {
	var items []model.ReviewItem
	if err := r.rest.doJSON(ctx, http.MethodGet, recallDuePath, nil, &items); err != nil {
		return nil, fmt.Errorf("httpRecallRepository.FetchDue: %w", err)
	}
	if items == nil {
		items = []model.ReviewItem{}
	}
	return items, nil
}

func (r *httpRecallRepository) SubmitReview(ctx context.Context, req *model.SubmitReviewRequest) error {
	if err := r.rest.doJSON(ctx, http.MethodPost, recallReviewPath, req, nil); err != nil {
		return fmt.Errorf("httpRecallRepository.SubmitReview: %w", err)
	}
	return nil
}

func (r *httpRecallRepository) FetchStats(ctx context.Context) (*model.ReviewStats, error) {
	var stats model.ReviewStats
	if err := r.rest.doJSON(ctx, http.MethodGet, recallStatsPath, nil, &stats); err != nil {
		return nil, fmt.Errorf("httpRecallRepository.FetchStats: %w", err)
	}
	return &stats, nil
}
