package composer

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/fennmarsh/scribe/internal/compose"
)

func placeholderHint(mode compose.Mode) string {
	switch mode {
	case compose.ModeMarkdown:
		return "# Write markdown…"
	case compose.ModeMath:
		return `\frac{write}{some TeX}`
	default:
		return "<p>Write HTML…</p>"
	}
}

// paneSurface adapts a bubbles textarea to the composer's Surface
// contract. The cursor row stands in for a pixel scroll offset; the
// ratio math upstream does not care about the unit.
type paneSurface struct {
	mode    compose.Mode
	area    textarea.Model
	factory *surfaceFactory

	onChange func()
	onScroll func()
	released bool

	lastValue string
	lastLine  int
}

func (s *paneSurface) Content() string {
	if s.released {
		return ""
	}
	return s.area.Value()
}

func (s *paneSurface) SetContent(content string) {
	if s.released {
		return
	}
	s.area.SetValue(content)
	s.lastValue = content
}

func (s *paneSurface) OnChange(fn func()) func() {
	s.onChange = fn
	return func() { s.onChange = nil }
}

func (s *paneSurface) OnScroll(fn func()) func() {
	s.onScroll = fn
	return func() { s.onScroll = nil }
}

func (s *paneSurface) Scroll() compose.ScrollRegion {
	return &textareaRegion{surface: s}
}

func (s *paneSurface) Focus() {
	if !s.released {
		s.area.Focus()
	}
}

// Release blurs and detaches the textarea; the factory forgets the
// surface so a stale pointer cannot be drawn or updated.
func (s *paneSurface) Release() {
	if s.released {
		return
	}
	s.released = true
	s.area.Blur()
	if s.factory != nil && s.factory.current == s {
		s.factory.current = nil
	}
}

// notifyChange fires the change listener if the value moved since the
// last notification.
func (s *paneSurface) notifyChange() {
	if s.released {
		return
	}
	if value := s.area.Value(); value != s.lastValue {
		s.lastValue = value
		if s.onChange != nil {
			s.onChange()
		}
	}
}

func (s *paneSurface) notifyScroll() {
	if s.released {
		return
	}
	if line := s.area.Line(); line != s.lastLine {
		s.lastLine = line
		if s.onScroll != nil {
			s.onScroll()
		}
	}
}

// textareaRegion exposes the textarea's cursor geometry as a scroll
// region: row index over total rows.
type textareaRegion struct {
	surface *paneSurface
}

func (r *textareaRegion) Top() int {
	return r.surface.area.Line()
}

func (r *textareaRegion) ScrollHeight() int {
	return r.surface.area.LineCount()
}

func (r *textareaRegion) ViewHeight() int {
	return r.surface.area.Height()
}

func (r *textareaRegion) SetTop(line int) {
	if r.surface.released {
		return
	}
	for r.surface.area.Line() < line {
		before := r.surface.area.Line()
		r.surface.area.CursorDown()
		if r.surface.area.Line() == before {
			break
		}
	}
	for r.surface.area.Line() > line {
		before := r.surface.area.Line()
		r.surface.area.CursorUp()
		if r.surface.area.Line() == before {
			break
		}
	}
	r.surface.lastLine = r.surface.area.Line()
}

// surfaceFactory builds one textarea-backed surface per mode and
// tracks the live one for the update/draw loop.
type surfaceFactory struct {
	width   int
	height  int
	current *paneSurface
}

func (f *surfaceFactory) New(mode compose.Mode) (compose.Surface, error) {
	area := textarea.New()
	area.Placeholder = placeholderHint(mode)
	area.CharLimit = 0
	area.SetWidth(f.width)
	area.SetHeight(f.height)

	s := &paneSurface{mode: mode, area: area, factory: f}
	f.current = s
	return s, nil
}

func (f *surfaceFactory) resize(width, height int) {
	f.width = width
	f.height = height
	if f.current != nil && !f.current.released {
		f.current.area.SetWidth(width)
		f.current.area.SetHeight(height)
	}
}

// previewPane is the single long-lived render target: a viewport over
// the terminal rendering of the preview markup.
type previewPane struct {
	vp     viewport.Model
	render *terminalRenderer
	markup string

	onScroll   func()
	lastOffset int
}

func newPreviewPane(width, height int, style string) (*previewPane, error) {
	render, err := newTerminalRenderer(width, style)
	if err != nil {
		return nil, err
	}
	return &previewPane{
		vp:     viewport.New(width, height),
		render: render,
	}, nil
}

func (p *previewPane) SetMarkup(markup string) {
	p.markup = markup
	p.vp.SetContent(p.render.Render(markup))
}

func (p *previewPane) Markup() string {
	return p.markup
}

func (p *previewPane) OnScroll(fn func()) func() {
	p.onScroll = fn
	return func() { p.onScroll = nil }
}

func (p *previewPane) Scroll() compose.ScrollRegion {
	return &viewportRegion{pane: p}
}

func (p *previewPane) notifyScroll() {
	if p.vp.YOffset != p.lastOffset {
		p.lastOffset = p.vp.YOffset
		if p.onScroll != nil {
			p.onScroll()
		}
	}
}

func (p *previewPane) resize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
	if err := p.render.setWidth(width); err == nil {
		p.vp.SetContent(p.render.Render(p.markup))
	}
}

type viewportRegion struct {
	pane *previewPane
}

func (r *viewportRegion) Top() int          { return r.pane.vp.YOffset }
func (r *viewportRegion) ScrollHeight() int { return r.pane.vp.TotalLineCount() }
func (r *viewportRegion) ViewHeight() int   { return r.pane.vp.Height }
func (r *viewportRegion) SetTop(offset int) {
	r.pane.vp.SetYOffset(offset)
	r.pane.lastOffset = r.pane.vp.YOffset
}
