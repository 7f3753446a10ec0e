package compose

import (
	"errors"
	"fmt"

	"github.com/fennmarsh/scribe/internal/markup"
	"github.com/fennmarsh/scribe/internal/sanitize"
)

// ErrUnavailable is returned by Open when the composer's capabilities
// (surface factory, preview pane, converters) are not all present.
var ErrUnavailable = errors.New("composer unavailable")

// Converters maps each mode to its pure source-to-markup function.
type Converters struct {
	Rich     func(string) string
	Markdown func(string) string
	Math     func(string) string
}

func (c Converters) complete() bool {
	return c.Rich != nil && c.Markdown != nil && c.Math != nil
}

func (c Converters) convert(mode Mode, source string) string {
	switch mode {
	case ModeRich:
		return c.Rich(source)
	case ModeMarkdown:
		return c.Markdown(source)
	case ModeMath:
		return c.Math(source)
	default:
		return ""
	}
}

func placeholderFor(mode Mode) string {
	switch mode {
	case ModeMarkdown:
		return markup.PlaceholderMarkdown
	case ModeMath:
		return markup.PlaceholderMath
	default:
		return markup.PlaceholderRich
	}
}

// Session is the composer's ephemeral state: it exists meaningfully
// between Open and Close, owns the single live surface binding, and
// is the only writer of the preview pane's markup.
type Session struct {
	host    HostEditor
	preview PreviewPane
	factory SurfaceFactory
	gate    *sanitize.Gate
	conv    Converters

	open bool
	mode Mode
	bind *binding

	previewMarkup     string
	previewMeaningful bool

	leftPercent float64
	drag        dragState

	// syncing breaks the scroll feedback loop: a sync-written scroll
	// position fires the opposite side's listener synchronously, and
	// that echo must not start a second sync.
	syncing bool

	detachPreviewScroll func()
}

// NewSession wires a session; nothing is created until Open.
func NewSession(
	host HostEditor,
	preview PreviewPane,
	factory SurfaceFactory,
	gate *sanitize.Gate,
	conv Converters,
) *Session {
	return &Session{
		host:        host,
		preview:     preview,
		factory:     factory,
		gate:        gate,
		conv:        conv,
		mode:        ModeRich,
		leftPercent: DefaultSplitPercent,
	}
}

// Available reports whether every capability the composer needs is
// present. Open on an unavailable session is a no-op error, so a host
// missing a capability disables the feature instead of crashing it.
func (s *Session) Available() bool {
	return s != nil && s.factory != nil && s.preview != nil && s.conv.complete()
}

// Open starts a session in rich mode with a 50/50 split, hydrates the
// rich surface from the host bridge (the only hydration the session
// ever does; mode switches start empty), and attaches the preview
// scroll listener exactly once.
func (s *Session) Open() error {
	if !s.Available() {
		return ErrUnavailable
	}
	if s.open {
		return nil
	}

	s.open = true
	s.mode = ModeRich
	s.leftPercent = DefaultSplitPercent
	s.drag = dragState{}
	s.resetPreview()

	if s.detachPreviewScroll == nil {
		s.detachPreviewScroll = s.preview.OnScroll(s.handlePreviewScroll)
	}

	if err := s.createSurface(ModeRich, s.initialHTML()); err != nil {
		s.open = false
		return err
	}
	s.renderPreview()
	s.focusSurface()
	return nil
}

// SwitchMode moves the session to the target mode: full teardown of
// the current surface, then an empty target surface. Content crosses
// modes only through the preview/apply path, never directly.
func (s *Session) SwitchMode(target Mode) error {
	if s == nil || !s.open || target == s.mode {
		return nil
	}
	s.bind.destroy()
	s.bind = nil
	if err := s.createSurface(target, ""); err != nil {
		return err
	}
	s.renderPreview()
	s.focusSurface()
	return nil
}

// Close applies the preview to the host (a placeholder preview maps
// to the empty string), tears everything down, and returns focus to
// the host editor. Closing a closed session is a no-op.
func (s *Session) Close() {
	if s == nil || !s.open {
		return
	}
	if s.host != nil {
		if s.previewMeaningful {
			s.host.SetHTML(s.previewMarkup)
		} else {
			s.host.SetHTML("")
		}
	}

	s.bind.destroy()
	s.bind = nil
	if s.detachPreviewScroll != nil {
		s.detachPreviewScroll()
		s.detachPreviewScroll = nil
	}

	s.open = false
	s.mode = ModeRich
	s.drag = dragState{}
	s.resetPreview()

	if s.host != nil {
		s.host.Focus()
	}
}

func (s *Session) IsOpen() bool {
	return s != nil && s.open
}

func (s *Session) ActiveMode() Mode {
	if s == nil {
		return ModeRich
	}
	return s.mode
}

// PreviewMarkup returns the current derived preview, placeholder
// included.
func (s *Session) PreviewMarkup() string {
	if s == nil {
		return ""
	}
	return s.previewMarkup
}

// PreviewMeaningful reports whether the preview holds real content
// rather than a placeholder.
func (s *Session) PreviewMeaningful() bool {
	return s != nil && s.previewMeaningful
}

// ActiveSurface exposes the live surface, or nil between modes and
// outside a session.
func (s *Session) ActiveSurface() Surface {
	if s == nil || s.bind == nil {
		return nil
	}
	return s.bind.surface
}

// initialHTML borrows the canonical content from the host, passed
// through the gate like every other path into the preview.
func (s *Session) initialHTML() string {
	if s.host == nil {
		return ""
	}
	return s.gate.Sanitize(s.host.HTML(), nil)
}

// createSurface enforces destroy-before-create: no two surfaces are
// ever live at once, so a stale callback has nothing to fire against.
func (s *Session) createSurface(mode Mode, content string) error {
	if s.bind != nil {
		s.bind.destroy()
		s.bind = nil
	}

	surf, err := s.factory.New(mode)
	if err != nil {
		return fmt.Errorf("create %s surface: %w", mode, err)
	}
	if content != "" {
		surf.SetContent(content)
	}

	s.bind = &binding{
		surface:      surf,
		scroll:       surf.Scroll(),
		detachChange: surf.OnChange(s.handleSurfaceChange),
		detachScroll: surf.OnScroll(s.handleSurfaceScroll),
	}
	s.mode = mode
	return nil
}

func (s *Session) focusSurface() {
	if s.bind != nil && s.bind.surface != nil {
		s.bind.surface.Focus()
	}
}

func (s *Session) resetPreview() {
	s.previewMarkup = placeholderFor(s.mode)
	s.previewMeaningful = false
	if s.preview != nil {
		s.preview.SetMarkup(s.previewMarkup)
	}
}

func (s *Session) handleSurfaceChange() {
	if s == nil || !s.open {
		return
	}
	s.renderPreview()
}

// renderPreview is the single, explicit re-render: every
// state-mutating operation ends here.
func (s *Session) renderPreview() {
	var source string
	if s.bind != nil && s.bind.surface != nil {
		source = s.bind.surface.Content()
	}

	out := s.conv.convert(s.mode, source)
	meaningful := !markup.IsPlaceholder(out) && markup.IsMeaningful(out)
	if !meaningful {
		out = placeholderFor(s.mode)
	}

	s.previewMarkup = out
	s.previewMeaningful = meaningful
	if s.preview != nil {
		s.preview.SetMarkup(out)
	}
}

// handleSurfaceScroll maps the active surface's position onto the
// preview, proportionally. The syncing flag is held only for the
// duration of the write, within this call.
func (s *Session) handleSurfaceScroll() {
	if s == nil || !s.open || s.syncing {
		return
	}
	if s.bind == nil || s.bind.scroll == nil {
		return
	}
	s.syncing = true
	applyRatio(s.preview.Scroll(), Ratio(s.bind.scroll))
	s.syncing = false
}

// handlePreviewScroll is the inverse direction; no-op when no surface
// is live.
func (s *Session) handlePreviewScroll() {
	if s == nil || !s.open || s.syncing {
		return
	}
	if s.bind == nil || s.bind.scroll == nil {
		return
	}
	s.syncing = true
	applyRatio(s.bind.scroll, Ratio(s.preview.Scroll()))
	s.syncing = false
}

// LeftPercent is the editing pane's share of the container width.
func (s *Session) LeftPercent() float64 {
	if s == nil {
		return DefaultSplitPercent
	}
	return s.leftPercent
}

func (s *Session) Dragging() bool {
	return s != nil && s.drag.dragging
}

// SetSplit moves the divider directly, clamped to the split bounds.
// Ignored while closed so the reopen reset stays authoritative.
func (s *Session) SetSplit(percent float64) {
	if s == nil || !s.open {
		return
	}
	s.leftPercent = clampSplit(percent)
}

// StartDrag begins a divider drag from the given pointer column.
func (s *Session) StartDrag(x int) {
	if s == nil || !s.open {
		return
	}
	s.drag.start(x, s.leftPercent)
}

// DragTo recomputes the split for the pointer position, clamped to
// the split bounds. Ignored while idle.
func (s *Session) DragTo(x, containerWidth int) {
	if s == nil {
		return
	}
	if percent, ok := s.drag.move(x, containerWidth); ok {
		s.leftPercent = percent
	}
}

func (s *Session) EndDrag() {
	if s != nil {
		s.drag.end()
	}
}
