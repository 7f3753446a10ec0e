package composer

import (
	htmltomd "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// terminalRenderer draws the preview's HTML in the terminal: HTML to
// markdown, then glamour for color. Both stages degrade to their
// input rather than fail, so the preview pane always shows something.
type terminalRenderer struct {
	conv  *htmltomd.Converter
	style string
	width int
	tr    *glamour.TermRenderer
}

func newTerminalRenderer(width int, style string) (*terminalRenderer, error) {
	r := &terminalRenderer{
		conv:  htmltomd.NewConverter("", true, nil),
		style: style,
	}
	if err := r.setWidth(width); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *terminalRenderer) setWidth(width int) error {
	if width < 10 {
		width = 10
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return err
	}
	r.width = width
	r.tr = tr
	return nil
}

// htmlToMarkdown is split out for testing; the terminal preview is an
// approximation and raw HTML is the fallback, never an error.
func (r *terminalRenderer) htmlToMarkdown(markup string) string {
	out, err := r.conv.ConvertString(markup)
	if err != nil || out == "" {
		return markup
	}
	return out
}

func (r *terminalRenderer) Render(markup string) string {
	source := r.htmlToMarkdown(markup)
	out, err := r.tr.Render(source)
	if err != nil {
		return source
	}
	return out
}
