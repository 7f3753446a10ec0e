package composer

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	closeApply   key.Binding
	abort        key.Binding
	modeRich     key.Binding
	modeMarkdown key.Binding
	modeMath     key.Binding
	yankPreview  key.Binding
	previewUp    key.Binding
	previewDown  key.Binding
	splitLeft    key.Binding
	splitRight   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		closeApply: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "apply & close"),
		),
		abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "discard"),
		),
		modeRich: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "rich"),
		),
		modeMarkdown: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "markdown"),
		),
		modeMath: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("F4", "math"),
		),
		yankPreview: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy html"),
		),
		previewUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "preview up"),
		),
		previewDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "preview down"),
		),
		splitLeft: key.NewBinding(
			key.WithKeys("ctrl+left"),
			key.WithHelp("ctrl+←", "shrink editor"),
		),
		splitRight: key.NewBinding(
			key.WithKeys("ctrl+right"),
			key.WithHelp("ctrl+→", "grow editor"),
		),
	}
}
