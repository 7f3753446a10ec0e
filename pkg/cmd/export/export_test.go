package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fennmarsh/scribe/internal/config"
	"github.com/fennmarsh/scribe/internal/drafts"
	"github.com/fennmarsh/scribe/internal/state"
)

func testState(t *testing.T) *state.State {
	t.Helper()
	store, err := drafts.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return &state.State{Config: &config.Config{}, Store: store}
}

func TestRunWritesStandalonePage(t *testing.T) {
	s := testState(t)

	d, err := s.Store.Create("Export Me", []string{"go"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	d.Body = `<p>hello</p><script>alert(1)</script>`
	if err := s.Store.Save(d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out := filepath.Join(t.TempDir(), "page.html")
	if err := run(s, d.Slug, out); err != nil {
		t.Fatalf("run: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	page := string(raw)

	if !strings.Contains(page, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	if !strings.Contains(page, "<h1>Export Me</h1>") {
		t.Error("missing title heading")
	}
	if !strings.Contains(page, "<p>hello</p>") {
		t.Error("body content lost")
	}
	if strings.Contains(page, "<script") {
		t.Error("script element survived export")
	}
	if !strings.Contains(page, `content="go"`) {
		t.Error("tags not exported as keywords")
	}
}

func TestRunUnknownSlug(t *testing.T) {
	s := testState(t)
	if err := run(s, "missing", ""); err == nil {
		t.Fatal("expected error for unknown slug")
	}
}
