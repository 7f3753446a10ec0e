// Package markup converts post source text in any composer mode into
// displayable, sanitized HTML.
package markup

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"strings"

	"git.sr.ht/~mekyt/latex2mathml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/fennmarsh/scribe/internal/cache"
	"github.com/fennmarsh/scribe/internal/sanitize"
)

const (
	placeholderClass = "scribe-placeholder"
	errorClass       = "scribe-render-error"

	mathmlNamespace = "http://www.w3.org/1998/Math/MathML"
)

func placeholder(text string) string {
	return `<p class="` + placeholderClass + `">` + text + `</p>`
}

// Per-mode placeholder markup, shown when a mode has nothing to
// preview. Sentinel values: never handed back to the host as content.
var (
	PlaceholderRich     = placeholder("Nothing to preview yet.")
	PlaceholderMarkdown = placeholder("Nothing to preview yet — markdown renders here as you type.")
	PlaceholderMath     = placeholder("Type TeX source to see it typeset here.")
	PlaceholderNoMath   = placeholder("Math rendering is unavailable.")
)

// IsPlaceholder reports whether markup is one of the composer's own
// placeholder sentinels rather than user content.
func IsPlaceholder(markup string) bool {
	return strings.HasPrefix(
		strings.TrimSpace(markup),
		`<p class="`+placeholderClass+`">`,
	)
}

// MathRenderer typesets TeX source as display markup. Implementations
// may return an error or panic; the pipeline absorbs both.
type MathRenderer func(source string) (string, error)

// LaTeX returns the default MathRenderer, producing block MathML.
func LaTeX() MathRenderer {
	return func(source string) (string, error) {
		return latex2mathml.Convert(source, mathmlNamespace, "block", 2), nil
	}
}

// runMath is the converter boundary for math renderers: a panicking
// renderer surfaces as an error, never past the converter.
func runMath(render MathRenderer, source string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = fmt.Errorf("typeset %q: %v", source, r)
		}
	}()
	return render(source)
}

// Pipeline holds the three per-mode converters. Each converter is a
// pure function of its source text: same source, same policy, same
// markup out.
type Pipeline struct {
	gate *sanitize.Gate
	md   goldmark.Markdown
	math MathRenderer

	// memo keeps recent conversions so the live preview does not
	// re-run goldmark or the math renderer on source it already saw.
	memo *cache.LRU
}

// NewPipeline builds converters over the given gate. A nil math
// renderer makes the math converter degrade to its placeholder.
func NewPipeline(gate *sanitize.Gate, math MathRenderer) *Pipeline {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Hard wraps keep the source's line breaks visible in the
			// preview. Raw HTML is let through here and reduced by the
			// gate afterwards.
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)
	return &Pipeline{gate: gate, md: md, math: math, memo: cache.New(256)}
}

func (p *Pipeline) memoized(mode, source string, convert func() string) string {
	key := mode + "\x00" + source
	if out, ok := p.memo.Get(key); ok {
		return out
	}
	out := convert()
	p.memo.Put(key, out)
	return out
}

// Rich converts rich-mode source. The surface already produces HTML,
// so the converter is the gate alone.
func (p *Pipeline) Rich(source string) string {
	if strings.TrimSpace(source) == "" {
		return PlaceholderRich
	}
	return p.gate.Sanitize(source, nil)
}

// Markdown converts markdown source with line-break-preserving
// semantics, then sanitizes.
func (p *Pipeline) Markdown(source string) string {
	if strings.TrimSpace(source) == "" {
		return PlaceholderMarkdown
	}
	return p.memoized("markdown", source, func() string {
		var buf bytes.Buffer
		if err := p.md.Convert([]byte(source), &buf); err != nil {
			return p.RenderFailed(err.Error())
		}
		return p.gate.Sanitize(buf.String(), nil)
	})
}

// Math typesets TeX source in display mode. Failures become inline
// error markup, never a panic out of the converter.
func (p *Pipeline) Math(source string) string {
	if p.math == nil {
		return PlaceholderNoMath
	}
	if strings.TrimSpace(source) == "" {
		return PlaceholderMath
	}
	return p.memoized("math", source, func() string {
		rendered, err := runMath(p.math, source)
		if err != nil {
			return p.RenderFailed(err.Error())
		}
		return p.gate.Sanitize(rendered, nil)
	})
}

// RenderFailed wraps a conversion failure as sanitized, displayable
// error markup.
func (p *Pipeline) RenderFailed(message string) string {
	markup := `<p class="` + errorClass + `">` + stdhtml.EscapeString(message) + `</p>`
	return p.gate.Sanitize(markup, nil)
}
