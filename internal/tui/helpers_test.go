package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"recall_keep/internal/config"
	"recall_keep/internal/model"
	"recall_keep/internal/repository/mocks"
	"recall_keep/internal/service"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runes(s string) bubbletea.KeyMsg {
	return bubbletea.KeyMsg{Type: bubbletea.KeyRunes, Runes: []rune(s)}
}

var (
	enterKey = bubbletea.KeyMsg{Type: bubbletea.KeyEnter}
	spaceKey = bubbletea.KeyMsg{Type: bubbletea.KeySpace, Runes: []rune{' '}}
)

func newQueue(t *testing.T, repo *mocks.RecallRepository, items []model.ReviewItem, err error) *service.ReviewQueue {
	t.Helper()
	repo.On("FetchDue", mock.Anything).Return(items, err).Once()
	cfg := config.Default()
	cfg.API.Timeout = time.Second
	return service.NewReviewQueue(context.Background(), repo, cfg, discardLogger())
}

func newInbox(t *testing.T, repo *mocks.InboxRepository, items []model.InboxItem) InboxModel {
	t.Helper()
	repo.On("ListItems", mock.Anything).Return(items, nil).Once()
	m := NewInboxModel(context.Background(), service.NewInboxService(repo, discardLogger()), discardLogger())
	updated, _ := m.Update(m.reload()())
	return updated.(InboxModel)
}

func update[M bubbletea.Model](t *testing.T, m M, msg bubbletea.Msg) (M, bubbletea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(M)
	require.True(t, ok)
	return next, cmd
}
