package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"recall_keep/internal/model"
	"recall_keep/internal/service"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatsSource は復習画面のヘッダーに出す件数の取得元です。
type StatsSource interface {
	FetchStats(ctx context.Context) (*model.ReviewStats, error)
}

type queueLoadedMsg struct{ err error }

type statsTickMsg struct{}

type statsMsg struct {
	stats *model.ReviewStats
	err   error
}

// ReviewModel は ReviewQueue を描画するだけの薄いモデルです。状態はキューが持ちます。
type ReviewModel struct {
	ctx      context.Context
	queue    *service.ReviewQueue
	stats    StatsSource
	interval time.Duration
	logger   *slog.Logger

	keys    reviewKeyMap
	help    help.Model
	spinner spinner.Model

	dueCount int
	hasStats bool
	reviewed int
	err      error
}

func NewReviewModel(ctx context.Context, queue *service.ReviewQueue, stats StatsSource, interval time.Duration, logger *slog.Logger) ReviewModel {
	if logger == nil {
		logger = slog.Default()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot

	return ReviewModel{
		ctx:      ctx,
		queue:    queue,
		stats:    stats,
		interval: interval,
		logger:   logger.With(slog.String("component", "tui.review")),
		keys:     newReviewKeyMap(),
		help:     help.New(),
		spinner:  s,
	}
}

func (m ReviewModel) Init() bubbletea.Cmd {
	cmds := []bubbletea.Cmd{m.spinner.Tick, m.loadQueue()}
	if m.stats != nil {
		cmds = append(cmds, m.fetchStats())
	}
	return bubbletea.Batch(cmds...)
}

func (m ReviewModel) loadQueue() bubbletea.Cmd {
	return func() bubbletea.Msg {
		return queueLoadedMsg{err: m.queue.LoadQueue(m.ctx)}
	}
}

func (m ReviewModel) fetchStats() bubbletea.Cmd {
	return func() bubbletea.Msg {
		stats, err := m.stats.FetchStats(m.ctx)
		return statsMsg{stats: stats, err: err}
	}
}

func (m ReviewModel) scheduleStats() bubbletea.Cmd {
	if m.stats == nil || m.interval <= 0 {
		return nil
	}
	return bubbletea.Tick(m.interval, func(time.Time) bubbletea.Msg {
		return statsTickMsg{}
	})
}

// finished はこれ以上通信しない状態かどうかです。
func (m ReviewModel) finished() bool {
	state := m.queue.State()
	return state == service.StateEmpty || state == service.StateFailed
}

func (m ReviewModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case queueLoadedMsg:
		m.err = msg.err
		return m, nil

	case statsTickMsg:
		if m.finished() {
			return m, nil
		}
		return m, m.fetchStats()

	case statsMsg:
		if msg.err != nil {
			// 件数表示は補助情報なので失敗しても画面は変えない
			m.logger.Warn("Failed to refresh review stats", slog.Any("error", msg.err))
		} else if msg.stats != nil {
			m.dueCount = msg.stats.DueCount
			m.hasStats = true
		}
		if m.finished() {
			return m, nil
		}
		return m, m.scheduleStats()

	case spinner.TickMsg:
		if m.queue.State() != service.StateLoading {
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

func (m ReviewModel) handleKey(msg bubbletea.KeyMsg) (bubbletea.Model, bubbletea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, bubbletea.Quit

	case key.Matches(msg, m.keys.Reveal):
		if m.queue.State() == service.StateShowingQuestion {
			if err := m.queue.Reveal(); err != nil {
				m.err = err
			}
		}

	case key.Matches(msg, m.keys.Rate):
		if m.queue.State() != service.StateShowingAnswer {
			return m, nil
		}
		quality, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		if _, err := m.queue.SubmitReview(quality); err != nil {
			m.err = err
			return m, nil
		}
		m.reviewed++
		m.err = nil
	}
	return m, nil
}

func (m ReviewModel) View() string {
	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	switch m.queue.State() {
	case service.StateLoading:
		b.WriteString(m.spinner.View() + " 復習カードを読み込み中...")
	case service.StateFailed:
		b.WriteString(errorStyle.Render("カードを読み込めませんでした: " + errorText(m.err)))
	case service.StateEmpty:
		b.WriteString(fmt.Sprintf("今日の復習は完了しました。(%d 枚)", m.reviewed))
	case service.StateShowingQuestion:
		if card, ok := m.queue.Peek(); ok {
			b.WriteString(cardStyle.Render(card.Front))
		}
	case service.StateShowingAnswer:
		if card, ok := m.queue.Peek(); ok {
			b.WriteString(cardStyle.Render(lipgloss.JoinVertical(
				lipgloss.Left,
				card.Front,
				mutedStyle.Render(strings.Repeat("─", 20)),
				answerStyle.Render(card.Back),
			)))
		}
	}

	if m.err != nil && m.queue.State() != service.StateFailed {
		b.WriteString("\n" + errorStyle.Render(errorText(m.err)))
	}
	b.WriteString("\n\n" + m.help.View(m.keys))
	return b.String()
}

func (m ReviewModel) headerView() string {
	header := titleStyle.Render("Recall")
	info := fmt.Sprintf("残り %d 枚", m.queue.Len())
	if m.hasStats {
		info += fmt.Sprintf(" / 期限 %d 枚", m.dueCount)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, header, " ", mutedStyle.Render(info))
}
