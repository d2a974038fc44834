package tui

import (
	"errors"

	"recall_keep/internal/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(1, 2).
			Width(60)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff66ff"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F"))

	statusStyles = map[string]lipgloss.Style{
		model.InboxStatusActive: lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff66ff")),
		model.InboxStatusPaused: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F")),
		model.InboxStatusDone:   lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
)

// errorText は画面に出すエラー文言です。AppError ならそのメッセージを使います。
func errorText(err error) string {
	var appErr *model.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

func renderStatus(status string) string {
	if style, ok := statusStyles[status]; ok {
		return style.Render(status)
	}
	return status
}
