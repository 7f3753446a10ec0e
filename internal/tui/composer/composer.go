// Package composer is the modal drafting surface: one editing pane in
// rich, markdown, or math mode, a live sanitized preview beside it,
// and a draggable divider between the two.
package composer

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fennmarsh/scribe/internal/compose"
	"github.com/fennmarsh/scribe/internal/drafts"
	"github.com/fennmarsh/scribe/internal/markup"
	"github.com/fennmarsh/scribe/internal/state"
)

type Model struct {
	state   *state.State
	draft   *drafts.Draft
	host    *drafts.Bridge
	session *compose.Session
	factory *surfaceFactory
	preview *previewPane
	keys    keyMap

	width  int
	height int

	status  string
	aborted bool
	saveErr error
}

func NewModel(s *state.State, d *drafts.Draft) (*Model, error) {
	gate := s.Config.Gate()
	pipe := markup.NewPipeline(gate, markup.LaTeX())

	preview, err := newPreviewPane(40, 20, s.Config.Composer.PreviewStyle)
	if err != nil {
		return nil, fmt.Errorf("composer: preview renderer: %w", err)
	}

	factory := &surfaceFactory{width: 40, height: 20}
	host := drafts.NewBridge(d)

	session := compose.NewSession(host, preview, factory, gate, compose.Converters{
		Rich:     pipe.Rich,
		Markdown: pipe.Markdown,
		Math:     pipe.Math,
	})

	m := &Model{
		state:   s,
		draft:   d,
		host:    host,
		session: session,
		factory: factory,
		preview: preview,
		keys:    newKeyMap(),
	}

	if err := session.Open(); err != nil {
		return nil, err
	}
	session.SetSplit(s.Config.Composer.SplitPercent)
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}

	return m.updateSurface(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.closeApply):
		m.session.Close()
		if m.host.Dirty() {
			if err := m.state.Store.Save(m.draft); err != nil {
				m.saveErr = fmt.Errorf("save draft %s: %w", m.draft.Slug, err)
			}
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.abort):
		m.aborted = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.modeRich):
		m.switchMode(compose.ModeRich)
		return m, nil

	case key.Matches(msg, m.keys.modeMarkdown):
		m.switchMode(compose.ModeMarkdown)
		return m, nil

	case key.Matches(msg, m.keys.modeMath):
		m.switchMode(compose.ModeMath)
		return m, nil

	case key.Matches(msg, m.keys.yankPreview):
		if err := clipboard.WriteAll(m.session.PreviewMarkup()); err != nil {
			m.status = "clipboard unavailable"
		} else {
			m.status = "preview HTML copied"
		}
		return m, nil

	case key.Matches(msg, m.keys.previewUp):
		m.scrollPreview(-m.preview.vp.Height)
		return m, nil

	case key.Matches(msg, m.keys.previewDown):
		m.scrollPreview(m.preview.vp.Height)
		return m, nil

	case key.Matches(msg, m.keys.splitLeft):
		m.session.SetSplit(m.session.LeftPercent() - 5)
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.splitRight):
		m.session.SetSplit(m.session.LeftPercent() + 5)
		m.resize()
		return m, nil
	}

	return m.updateSurface(msg)
}

// updateSurface routes remaining messages to the live editing surface
// and fires its listeners when the value or cursor row moved.
func (m *Model) updateSurface(msg tea.Msg) (tea.Model, tea.Cmd) {
	surf := m.factory.current
	if surf == nil || surf.released {
		return m, nil
	}

	var cmd tea.Cmd
	surf.area, cmd = surf.area.Update(msg)
	surf.notifyChange()
	surf.notifyScroll()
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	contentWidth, _, leftWidth := m.layout()
	x := msg.X - 1

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if x <= leftWidth {
			m.scrollEditor(-3)
		} else {
			m.scrollPreview(-3)
		}
		return
	case tea.MouseButtonWheelDown:
		if x <= leftWidth {
			m.scrollEditor(3)
		} else {
			m.scrollPreview(3)
		}
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && x == leftWidth {
			m.session.StartDrag(x)
		}
	case tea.MouseActionMotion:
		if m.session.Dragging() {
			m.session.DragTo(x, contentWidth)
			m.resize()
		}
	case tea.MouseActionRelease:
		m.session.EndDrag()
	}
}

func (m *Model) switchMode(target compose.Mode) {
	if err := m.session.SwitchMode(target); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.resize()
}

func (m *Model) scrollEditor(lines int) {
	surf := m.factory.current
	if surf == nil || surf.released {
		return
	}
	for i := 0; i < lines; i++ {
		surf.area.CursorDown()
	}
	for i := 0; i < -lines; i++ {
		surf.area.CursorUp()
	}
	surf.notifyScroll()
}

func (m *Model) scrollPreview(lines int) {
	m.preview.vp.SetYOffset(m.preview.vp.YOffset + lines)
	m.preview.notifyScroll()
}

// layout derives the pane geometry from the window size and the
// session's split. The divider takes one column between the panes.
func (m *Model) layout() (contentWidth, paneHeight, leftWidth int) {
	contentWidth = m.width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}
	paneHeight = m.height - 4
	if paneHeight < 3 {
		paneHeight = 3
	}
	leftWidth = int(float64(contentWidth) * m.session.LeftPercent() / 100)
	if leftWidth < 1 {
		leftWidth = 1
	}
	if leftWidth > contentWidth-2 {
		leftWidth = contentWidth - 2
	}
	return contentWidth, paneHeight, leftWidth
}

func (m *Model) resize() {
	contentWidth, paneHeight, leftWidth := m.layout()
	rightWidth := contentWidth - leftWidth - 1

	m.factory.resize(leftWidth, paneHeight)
	m.preview.resize(rightWidth, paneHeight)
}

func (m *Model) View() string {
	_, paneHeight, _ := m.layout()

	var editor string
	if surf := m.factory.current; surf != nil && !surf.released {
		editor = editorStyle.Render(surf.area.View())
	}

	divider := dividerStyle.Render(
		strings.TrimRight(strings.Repeat("│\n", paneHeight), "\n"),
	)

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		editor,
		divider,
		previewStyle.Render(m.preview.vp.View()),
	)

	sections := []string{
		m.renderHeader(),
		panes,
		m.renderStatus(),
	}
	return appStyle.Render(strings.Join(sections, "\n"))
}

func (m *Model) renderHeader() string {
	parts := []string{titleStyle.Render("Compose: " + m.draft.Title)}
	labels := map[compose.Mode]string{
		compose.ModeRich:     "F2 Rich",
		compose.ModeMarkdown: "F3 Markdown",
		compose.ModeMath:     "F4 Math",
	}
	for _, mode := range compose.Modes {
		style := tabStyle
		if mode == m.session.ActiveMode() {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(labels[mode]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *Model) renderStatus() string {
	left := statusStyle.Render(
		fmt.Sprintf("%s · split %d%%", m.session.ActiveMode(), int(m.session.LeftPercent())),
	)
	if m.status != "" {
		left += "  " + statusStyle.Render(m.status)
	}
	help := helpStyle.Render("esc apply & close · ctrl+c discard · ctrl+y copy html · ctrl+←/→ resize")
	return left + "  " + help
}

// Run opens the composer over the draft and blocks until it closes.
// Esc applies the preview to the draft and saves; ctrl+c discards.
func Run(s *state.State, d *drafts.Draft) error {
	m, err := NewModel(s, d)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return fmt.Errorf("composer: %w", err)
	}

	if m.aborted {
		return nil
	}
	return m.saveErr
}
