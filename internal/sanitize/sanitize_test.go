package sanitize

import (
	"strings"
	"testing"
)

func TestSanitizeStripsScripts(t *testing.T) {
	g := NewGate(DefaultPolicy())

	cases := []struct {
		name  string
		input string
		want  string
		deny  string
	}{
		{
			name:  "script element removed",
			input: `<p>hi</p><script>alert(1)</script>`,
			want:  "<p>hi</p>",
			deny:  "script",
		},
		{
			name:  "event handler removed",
			input: `<p onclick="steal()">hi</p>`,
			want:  "<p>hi</p>",
			deny:  "onclick",
		},
		{
			name:  "javascript scheme removed",
			input: `<a href="javascript:alert(1)">x</a>`,
			deny:  "javascript",
		},
		{
			name:  "https link kept",
			input: `<a href="https://example.com">x</a>`,
			want:  `href="https://example.com"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := g.Sanitize(tc.input, nil)
			if tc.want != "" && !strings.Contains(got, tc.want) {
				t.Errorf("Sanitize(%q) = %q, want it to contain %q", tc.input, got, tc.want)
			}
			if tc.deny != "" && strings.Contains(got, tc.deny) {
				t.Errorf("Sanitize(%q) = %q, must not contain %q", tc.input, got, tc.deny)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	g := NewGate(DefaultPolicy())

	inputs := []string{
		"",
		"plain text",
		`<p class="lead">hello <strong>world</strong></p>`,
		`<script>alert(1)</script><p onmouseover="x()">hi&nbsp;</p>`,
		`<math display="block"><mrow><mi>x</mi><mo>+</mo><mn>1</mn></mrow></math>`,
		`<div data-post-id="42" aria-label="post">body</div>`,
	}

	for _, in := range inputs {
		once := g.Sanitize(in, nil)
		twice := g.Sanitize(once, nil)
		if once != twice {
			t.Errorf("sanitize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestSanitizeKeepsStructuralAttributes(t *testing.T) {
	g := NewGate(DefaultPolicy())

	in := `<p id="p1" class="lead" style="color:red" data-k="v" aria-hidden="true">x</p>`
	got := g.Sanitize(in, nil)

	for _, want := range []string{`id="p1"`, `class="lead"`, `data-k="v"`, `aria-hidden="true"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Sanitize(%q) = %q, missing %q", in, got, want)
		}
	}
}

func TestSanitizeExtraPolicyOverridesBase(t *testing.T) {
	g := NewGate(Policy{Elements: []string{"p"}})

	in := `<p>a</p><video>b</video>`
	if got := g.Sanitize(in, nil); strings.Contains(got, "video") {
		t.Fatalf("base policy unexpectedly allows video: %q", got)
	}

	extra := &Policy{Elements: []string{"p", "video"}}
	got := g.Sanitize(in, extra)
	if !strings.Contains(got, "<video>") {
		t.Errorf("extra policy should replace base elements, got %q", got)
	}

	// The merge is per call; the base gate stays untouched.
	if got := g.Sanitize(in, nil); strings.Contains(got, "video") {
		t.Errorf("extra policy leaked into base gate: %q", got)
	}
}

func TestPolicyMergeShallow(t *testing.T) {
	base := DefaultPolicy()
	merged := base.Merge(&Policy{URLSchemes: []string{"gopher"}})

	if len(merged.URLSchemes) != 1 || merged.URLSchemes[0] != "gopher" {
		t.Errorf("URLSchemes not replaced: %v", merged.URLSchemes)
	}
	if len(merged.Elements) != len(base.Elements) {
		t.Errorf("unset fields must inherit, elements changed: %d != %d",
			len(merged.Elements), len(base.Elements))
	}
}

func TestPassthroughGate(t *testing.T) {
	g := Passthrough()

	in := `<script>alert(1)</script>`
	if got := g.Sanitize(in, nil); got != in {
		t.Errorf("passthrough gate altered input: %q", got)
	}
	if !g.IsPassthrough() {
		t.Error("IsPassthrough() = false for passthrough gate")
	}

	var nilGate *Gate
	if got := nilGate.Sanitize(in, nil); got != in {
		t.Errorf("nil gate must pass through, got %q", got)
	}
}
