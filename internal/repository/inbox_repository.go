package repository

import (
	"context"
	"fmt"
	"net/http"

	"recall_keep/internal/model"
)

const (
	inboxItemsPath      = "/api/inbox/items"
	inboxBulkUpdatePath = "/api/inbox/items/bulk-update"
)

type InboxRepository interface {
	ListItems(ctx context.Context) ([]model.InboxItem, error)
	BulkUpdate(ctx context.Context, req *model.BulkUpdateRequest) error
}

type httpInboxRepository struct {
	rest restClient
}

func NewHTTPInboxRepository(client *http.Client, baseURL string) InboxRepository {
	return &httpInboxRepository{rest: newRestClient(client, baseURL)}
}

func (r *httpInboxRepository) ListItems(ctx context.Context) ([]model.InboxItem, error) {
	var items []model.InboxItem
	if err := r.rest.doJSON(ctx, http.MethodGet, inboxItemsPath, nil, &items); err != nil {
		return nil, fmt.Errorf("httpInboxRepository.ListItems: %w", err)
	}
	if items == nil {
		items = []model.InboxItem{}
	}
	return items, nil
}

func (r *httpInboxRepository) BulkUpdate(ctx context.Context, req *model.BulkUpdateRequest) error {
	if err := r.rest.doJSON(ctx, http.MethodPut, inboxBulkUpdatePath, req, nil); err != nil {
		return fmt.Errorf("httpInboxRepository.BulkUpdate: %w", err)
	}
	return nil
}
