package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"recall_keep/internal/model"
	"recall_keep/internal/service"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	bubbletea "github.com/charmbracelet/bubbletea"
)

type inboxLoadedMsg struct{ err error }

type bulkAppliedMsg struct {
	status  string
	count   int
	applied bool
	err     error
}

// InboxModel はインボックス一覧と一括更新の画面です。
type InboxModel struct {
	ctx    context.Context
	svc    *service.InboxService
	logger *slog.Logger

	keys    inboxKeyMap
	help    help.Model
	spinner spinner.Model

	cursor  int
	loading bool
	busy    bool
	notice  string
	err     error
}

func NewInboxModel(ctx context.Context, svc *service.InboxService, logger *slog.Logger) InboxModel {
	if logger == nil {
		logger = slog.Default()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot

	return InboxModel{
		ctx:     ctx,
		svc:     svc,
		logger:  logger.With(slog.String("component", "tui.inbox")),
		keys:    newInboxKeyMap(),
		help:    help.New(),
		spinner: s,
		loading: true,
	}
}

func (m InboxModel) Init() bubbletea.Cmd {
	return bubbletea.Batch(m.spinner.Tick, m.reload())
}

func (m InboxModel) reload() bubbletea.Cmd {
	return func() bubbletea.Msg {
		return inboxLoadedMsg{err: m.svc.Reload(m.ctx)}
	}
}

func (m InboxModel) bulkApply(status string) bubbletea.Cmd {
	count := m.svc.Selection().Len()
	return func() bubbletea.Msg {
		applied, err := m.svc.BulkApply(m.ctx, status)
		return bulkAppliedMsg{status: status, count: count, applied: applied, err: err}
	}
}

func (m InboxModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case inboxLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.clampCursor()
		return m, nil

	case bulkAppliedMsg:
		m.busy = false
		m.err = msg.err
		m.logger.Debug("Bulk apply finished", slog.String("status", msg.status), slog.Bool("applied", msg.applied))
		if msg.applied {
			m.notice = fmt.Sprintf("%d 件を %s にしました。", msg.count, msg.status)
		}
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.busy {
			return m, nil
		}
		var cmd bubbletea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bubbletea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case bubbletea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m InboxModel) handleKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, bubbletea.Quit
	}
	if m.loading || m.busy {
		return m, nil
	}

	items := m.svc.Items()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(items) {
			m.svc.Selection().Toggle(items[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Clear):
		m.svc.Selection().Clear()
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		m.notice = ""
		return m, bubbletea.Batch(m.spinner.Tick, m.reload())
	case key.Matches(msg, m.keys.ApplyActive):
		return m.startBulk(model.InboxStatusActive)
	case key.Matches(msg, m.keys.ApplyPaused):
		return m.startBulk(model.InboxStatusPaused)
	case key.Matches(msg, m.keys.ApplyDone):
		return m.startBulk(model.InboxStatusDone)
	}
	return m, nil
}

// startBulk は選択が空なら何もしません。
func (m InboxModel) startBulk(status string) (bubbletea.Model, bubbletea.Cmd) {
	if m.svc.Selection().Len() == 0 {
		return m, nil
	}
	m.busy = true
	m.err = nil
	m.notice = ""
	return m, bubbletea.Batch(m.spinner.Tick, m.bulkApply(status))
}

func (m *InboxModel) clampCursor() {
	n := len(m.svc.Items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m InboxModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Inbox"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " 読み込み中...\n")
	}

	items := m.svc.Items()
	if len(items) == 0 && !m.loading {
		b.WriteString(mutedStyle.Render("項目はありません。") + "\n")
	}
	selection := m.svc.Selection()
	for i, item := range items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "[ ]"
		if selection.Contains(item.ID) {
			check = selectedStyle.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", cursor, check, item.Title, renderStatus(item.Status)))
	}

	b.WriteString("\n")
	status := fmt.Sprintf("%d 件選択中", selection.Len())
	if m.busy {
		status = m.spinner.View() + " 更新中... " + status
	}
	b.WriteString(mutedStyle.Render(status))
	if m.notice != "" {
		b.WriteString("\n" + answerStyle.Render(m.notice))
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("エラー: "+errorText(m.err)))
	}
	b.WriteString("\n\n" + m.help.View(m.keys))
	return b.String()
}
