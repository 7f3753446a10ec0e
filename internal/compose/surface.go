// Package compose implements the composer core: one live editing
// surface at a time, a single long-lived preview pane, and the
// lifecycle, conversion, and scroll plumbing between them.
package compose

// Mode identifies which editing surface is active.
type Mode int

const (
	ModeRich Mode = iota
	ModeMarkdown
	ModeMath
)

// Modes lists every editing mode in switch order.
var Modes = []Mode{ModeRich, ModeMarkdown, ModeMath}

func (m Mode) String() string {
	switch m {
	case ModeRich:
		return "rich"
	case ModeMarkdown:
		return "markdown"
	case ModeMath:
		return "math"
	default:
		return "unknown"
	}
}

// ScrollRegion is the scrollable geometry of a pane. A region whose
// scroll height does not exceed its view height is not scrollable.
type ScrollRegion interface {
	Top() int
	SetTop(int)
	ScrollHeight() int
	ViewHeight() int
}

// Surface is one live, mode-specific editing widget. Listener attach
// methods return their detach funcs; attach and detach always pair.
type Surface interface {
	Content() string
	SetContent(string)
	OnChange(fn func()) (detach func())
	OnScroll(fn func()) (detach func())
	Scroll() ScrollRegion
	Focus()
	// Release hands the underlying editor handle back to its owner.
	// A released surface must tolerate further no-op calls.
	Release()
}

// SurfaceFactory builds the surface for a mode.
type SurfaceFactory interface {
	New(Mode) (Surface, error)
}

// PreviewPane is the single render target for the life of a session.
type PreviewPane interface {
	SetMarkup(string)
	OnScroll(fn func()) (detach func())
	Scroll() ScrollRegion
}

// binding pairs a live surface with its attached listener handles and
// scroll element. The four references tear down together; a partial
// teardown is a listener leak.
type binding struct {
	surface      Surface
	scroll       ScrollRegion
	detachChange func()
	detachScroll func()
}

func (b *binding) destroy() {
	if b == nil {
		return
	}
	if b.detachChange != nil {
		b.detachChange()
		b.detachChange = nil
	}
	if b.detachScroll != nil {
		b.detachScroll()
		b.detachScroll = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	b.scroll = nil
}
