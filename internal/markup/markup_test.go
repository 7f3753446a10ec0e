package markup

import (
	"errors"
	"strings"
	"testing"

	"github.com/fennmarsh/scribe/internal/sanitize"
)

func newTestPipeline(math MathRenderer) *Pipeline {
	return NewPipeline(sanitize.NewGate(sanitize.DefaultPolicy()), math)
}

func TestMarkdownHeadingAndParagraph(t *testing.T) {
	p := newTestPipeline(nil)

	got := p.Markdown("# Hello\n\nworld")
	if !strings.Contains(got, ">Hello</h1>") {
		t.Errorf("missing top-level heading in %q", got)
	}
	if !strings.Contains(got, "<p>world</p>") {
		t.Errorf("missing paragraph in %q", got)
	}
	if !IsMeaningful(got) {
		t.Errorf("converted markdown should be meaningful: %q", got)
	}
}

func TestMarkdownPreservesLineBreaks(t *testing.T) {
	p := newTestPipeline(nil)

	got := p.Markdown("first\nsecond")
	if !strings.Contains(got, "<br") {
		t.Errorf("single newline should hard-wrap, got %q", got)
	}
}

func TestMarkdownSanitizesEmbeddedHTML(t *testing.T) {
	p := newTestPipeline(nil)

	got := p.Markdown("safe\n\n<script>alert(1)</script>")
	if strings.Contains(got, "script") {
		t.Errorf("script survived the gate: %q", got)
	}
	if !strings.Contains(got, "safe") {
		t.Errorf("content lost: %q", got)
	}
}

func TestRichSanitizes(t *testing.T) {
	p := newTestPipeline(nil)

	got := p.Rich(`<p onclick="x()">hi</p><script>bad()</script>`)
	if strings.Contains(got, "onclick") || strings.Contains(got, "script") {
		t.Errorf("rich converter must pass through the gate: %q", got)
	}
	if !strings.Contains(got, "<p>hi</p>") {
		t.Errorf("rich content lost: %q", got)
	}
}

func TestEmptySourceYieldsModePlaceholder(t *testing.T) {
	p := newTestPipeline(func(string) (string, error) { return "<math></math>", nil })

	cases := []struct {
		name    string
		convert func(string) string
		want    string
	}{
		{"rich", p.Rich, PlaceholderRich},
		{"markdown", p.Markdown, PlaceholderMarkdown},
		{"math", p.Math, PlaceholderMath},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, src := range []string{"", "   ", "\n\t"} {
				if got := tc.convert(src); got != tc.want {
					t.Errorf("convert(%q) = %q, want placeholder %q", src, got, tc.want)
				}
			}
		})
	}
}

func TestPlaceholdersAreSentinels(t *testing.T) {
	for _, ph := range []string{PlaceholderRich, PlaceholderMarkdown, PlaceholderMath, PlaceholderNoMath} {
		if !IsPlaceholder(ph) {
			t.Errorf("IsPlaceholder(%q) = false", ph)
		}
	}
	if IsPlaceholder("<p>real content</p>") {
		t.Error("real content misclassified as placeholder")
	}
}

func TestMathRenderFailureBecomesErrorMarkup(t *testing.T) {
	p := newTestPipeline(func(string) (string, error) {
		return "", errors.New("unbalanced brace")
	})

	got := p.Math(`\frac{1`)
	if !strings.Contains(got, "unbalanced brace") {
		t.Errorf("error message not surfaced: %q", got)
	}
	if !strings.Contains(got, errorClass) {
		t.Errorf("error markup missing class: %q", got)
	}
}

func TestMathRendererPanicIsAbsorbed(t *testing.T) {
	p := newTestPipeline(func(string) (string, error) {
		panic("renderer exploded")
	})

	got := p.Math("x^2")
	if !strings.Contains(got, errorClass) {
		t.Errorf("panic should become error markup, got %q", got)
	}
}

func TestMathWithoutRenderer(t *testing.T) {
	p := newTestPipeline(nil)

	if got := p.Math("x^2"); got != PlaceholderNoMath {
		t.Errorf("Math without renderer = %q, want %q", got, PlaceholderNoMath)
	}
}

func TestMathRendersMathML(t *testing.T) {
	p := newTestPipeline(LaTeX())

	got := p.Math("x^2")
	if !strings.Contains(got, "<math") {
		t.Errorf("expected MathML output, got %q", got)
	}
}

func TestConvertersAreDeterministic(t *testing.T) {
	p := newTestPipeline(LaTeX())

	srcs := map[string]func(string) string{
		"# one\ntwo":   p.Markdown,
		"<p>rich</p>":  p.Rich,
		`\sqrt{x + 1}`: p.Math,
	}
	for src, convert := range srcs {
		first := convert(src)
		for i := 0; i < 3; i++ {
			if got := convert(src); got != first {
				t.Errorf("conversion of %q not stable: %q vs %q", src, first, got)
			}
		}
	}
}

func TestRenderFailedIsSanitized(t *testing.T) {
	p := newTestPipeline(nil)

	got := p.RenderFailed(`<img src=x onerror=alert(1)> bad input`)
	if strings.Contains(got, "onerror") {
		t.Errorf("error markup must be safe: %q", got)
	}
	if !strings.Contains(got, "bad input") {
		t.Errorf("error text lost: %q", got)
	}
}
