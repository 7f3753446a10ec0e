// Package sanitize turns arbitrary markup into markup that is safe to
// display, driven by a declarative allow-list policy.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// Policy is the declarative allow-list a Gate compiles. Zero-value
// fields inherit from the policy they are merged over.
type Policy struct {
	Elements   []string
	Attributes []string
	URLSchemes []string
	// DataAttributes additionally allows data-* and aria-* attributes
	// on every element.
	DataAttributes *bool
}

// Aria attributes are allow-listed by name; bluemonday matches
// attribute names exactly, not by pattern.
var ariaAttrs = []string{
	"role", "aria-label", "aria-labelledby", "aria-hidden",
	"aria-describedby", "aria-live", "aria-expanded",
}

// DefaultPolicy covers the structural tags a post body may carry plus
// the MathML elements the math converter emits. Script-executing URI
// schemes are excluded by omission.
func DefaultPolicy() Policy {
	yes := true
	return Policy{
		Elements: []string{
			"p", "br", "hr", "div", "span",
			"h1", "h2", "h3", "h4", "h5", "h6",
			"ul", "ol", "li", "blockquote", "pre", "code",
			"em", "strong", "b", "i", "u", "s", "a", "img",
			"table", "thead", "tbody", "tr", "th", "td",
			"figure", "figcaption", "sub", "sup",
			"math", "semantics", "annotation", "mrow", "mi", "mo", "mn",
			"msup", "msub", "msubsup", "mfrac", "msqrt", "mroot",
			"mstyle", "mtext", "mspace", "mtable", "mtr", "mtd",
			"mover", "munder", "munderover",
		},
		Attributes: []string{
			"style", "class", "id", "href", "src", "alt", "title",
			"width", "height", "xmlns", "display", "mathvariant",
		},
		URLSchemes:     []string{"http", "https", "mailto"},
		DataAttributes: &yes,
	}
}

// Merge lays extra over p, shallowly: any field extra sets replaces
// the corresponding field of p wholesale.
func (p Policy) Merge(extra *Policy) Policy {
	if extra == nil {
		return p
	}
	out := p
	if extra.Elements != nil {
		out.Elements = extra.Elements
	}
	if extra.Attributes != nil {
		out.Attributes = extra.Attributes
	}
	if extra.URLSchemes != nil {
		out.URLSchemes = extra.URLSchemes
	}
	if extra.DataAttributes != nil {
		out.DataAttributes = extra.DataAttributes
	}
	return out
}

func (p Policy) compile() *bluemonday.Policy {
	bp := bluemonday.NewPolicy()
	bp.AllowElements(p.Elements...)
	if len(p.Attributes) > 0 {
		bp.AllowAttrs(p.Attributes...).Globally()
	}
	if len(p.URLSchemes) > 0 {
		bp.AllowURLSchemes(p.URLSchemes...)
	}
	if p.DataAttributes != nil && *p.DataAttributes {
		bp.AllowDataAttributes()
		bp.AllowAttrs(ariaAttrs...).Globally()
	}
	return bp
}

// Gate sanitizes markup against a base policy, optionally widened per
// call with an extra policy.
type Gate struct {
	base        Policy
	compiled    *bluemonday.Policy
	passthrough bool
}

// NewGate compiles the base policy once; per-call extras are compiled
// on demand.
func NewGate(base Policy) *Gate {
	return &Gate{base: base, compiled: base.compile()}
}

// Passthrough returns a gate that leaves markup untouched. Callers
// accept untrusted-in/untrusted-out when they choose this; it exists
// so a host with no sanitizer of its own degrades instead of failing.
func Passthrough() *Gate {
	return &Gate{passthrough: true}
}

// IsPassthrough reports whether the gate sanitizes at all.
func (g *Gate) IsPassthrough() bool {
	return g == nil || g.passthrough
}

// Sanitize returns markup reduced to the allow-list. With a non-nil
// extra the call uses base-with-extra-merged instead. Sanitize is
// idempotent for any fixed policy.
func (g *Gate) Sanitize(markup string, extra *Policy) string {
	if g == nil || g.passthrough {
		return markup
	}
	if extra == nil {
		return g.compiled.Sanitize(markup)
	}
	return g.base.Merge(extra).compile().Sanitize(markup)
}
