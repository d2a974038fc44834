package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"recall_keep/internal/model"
	"recall_keep/internal/repository"
	"recall_keep/internal/webutil"
)

// InboxService はインボックス一覧と選択状態を保持し、一括更新を行います。
//
// 一括更新もローカルを先に更新してから送信します。ただし前面の操作なので結果は待ち、
// 失敗したらローカルのステータスを元に戻して選択はそのまま残します。
type InboxService struct {
	mu        sync.Mutex
	items     []model.InboxItem
	selection *SelectionSet

	repo   repository.InboxRepository
	logger *slog.Logger
}

func NewInboxService(repo repository.InboxRepository, logger *slog.Logger) *InboxService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InboxService{
		repo:      repo,
		selection: NewSelectionSet(),
		logger:    logger.With(slog.String("component", "inbox")),
	}
}

func (s *InboxService) Selection() *SelectionSet {
	return s.selection
}

// Items は現在の一覧のコピーを返します。
func (s *InboxService) Items() []model.InboxItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.InboxItem(nil), s.items...)
}

// Reload は一覧をサーバーから取り直します。一覧から消えたIDは選択からも外します。
// 失敗した場合は以前の一覧を残します。
func (s *InboxService) Reload(ctx context.Context) error {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		s.logger.Error("Failed to load inbox items", slog.Any("error", err))
		return err
	}

	keep := make(map[string]struct{}, len(items))
	for _, item := range items {
		keep[item.ID] = struct{}{}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.selection.retain(keep)

	s.logger.Debug("Inbox items loaded", slog.Int("count", len(items)))
	return nil
}

// BulkApply は選択中の全項目に status を適用します。
// 選択が空なら何も送信せず applied=false を返します。
func (s *InboxService) BulkApply(ctx context.Context, status string) (applied bool, err error) {
	ids := s.selection.IDs()
	if len(ids) == 0 {
		return false, nil
	}

	req := &model.BulkUpdateRequest{ItemIDs: ids, Status: status}
	if err := webutil.ValidateStruct(req); err != nil {
		return false, err
	}

	previous := s.applyLocal(ids, status)

	logger := s.logger.With(slog.Int("count", len(ids)), slog.String("status", status))
	if err := s.repo.BulkUpdate(ctx, req); err != nil {
		s.restoreLocal(previous)
		logger.Error("Bulk update failed, selection kept", slog.Any("error", err))
		return false, err
	}

	// 送信中に選択された項目は残す
	s.selection.removeAll(ids)
	logger.Info("Bulk update applied")

	if err := s.Reload(ctx); err != nil {
		return true, fmt.Errorf("bulk update applied but reload failed: %w", err)
	}
	return true, nil
}

// applyLocal は ids のステータスを書き換え、元のステータスを返します。
func (s *InboxService) applyLocal(ids []string, status string) map[string]string {
	target := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		target[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	previous := make(map[string]string, len(ids))
	for i := range s.items {
		if _, ok := target[s.items[i].ID]; ok {
			previous[s.items[i].ID] = s.items[i].Status
			s.items[i].Status = status
		}
	}
	return previous
}

func (s *InboxService) restoreLocal(previous map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if status, ok := previous[s.items[i].ID]; ok {
			s.items[i].Status = status
		}
	}
}
