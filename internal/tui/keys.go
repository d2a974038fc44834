package tui

import "github.com/charmbracelet/bubbles/key"

type reviewKeyMap struct {
	Reveal key.Binding
	Rate   key.Binding
	Quit   key.Binding
}

func (k reviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reveal, k.Rate, k.Quit}
}

func (k reviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newReviewKeyMap() reviewKeyMap {
	return reviewKeyMap{
		Reveal: key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "答えを見る")),
		Rate:   key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5"), key.WithHelp("0-5", "評価")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "終了")),
	}
}

type inboxKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Clear       key.Binding
	ApplyActive key.Binding
	ApplyPaused key.Binding
	ApplyDone   key.Binding
	Reload      key.Binding
	Quit        key.Binding
}

func (k inboxKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ApplyActive, k.ApplyPaused, k.ApplyDone, k.Reload, k.Quit}
}

func (k inboxKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Clear},
		{k.ApplyActive, k.ApplyPaused, k.ApplyDone, k.Reload, k.Quit},
	}
}

func newInboxKeyMap() inboxKeyMap {
	return inboxKeyMap{
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "上へ")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "下へ")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "選択")),
		Clear:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "選択解除")),
		ApplyActive: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "active")),
		ApplyPaused: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paused")),
		ApplyDone:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "再読み込み")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "終了")),
	}
}
