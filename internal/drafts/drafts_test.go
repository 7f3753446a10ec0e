package drafts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "drafts"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Mixed CASE  title ", "mixed-case-title"},
		{"symbols?! & (numbers) 42", "symbols-numbers-42"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestCreateLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	d, err := s.Create("My First Post", []string{"go", "blog"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	d.Body = "<h1>Hi</h1>\n<p>body</p>"
	if err := s.Save(d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load("my-first-post")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Title != "My First Post" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" {
		t.Errorf("Tags = %v", got.Tags)
	}
	if got.Body != d.Body {
		t.Errorf("Body = %q, want %q", got.Body, d.Body)
	}
	if got.Created.IsZero() || got.Updated.IsZero() {
		t.Errorf("timestamps not persisted: %v / %v", got.Created, got.Updated)
	}
}

func TestCreateRefusesDuplicateSlug(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Create("Same Title", nil); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := s.Create("same title!", nil); err == nil {
		t.Fatal("duplicate slug accepted")
	}
}

func TestLoadToleratesHandEditedDates(t *testing.T) {
	s := newTestStore(t)

	raw := "---\ntitle: Loose Dates\ncreated: May 8, 2009 5:57:51 PM\nupdated: 2024-04-01\n---\n<p>x</p>"
	path := filepath.Join(s.Dir(), "loose-dates.html")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	d, err := s.Load("loose-dates")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Created.Year() != 2009 {
		t.Errorf("Created = %v, want year 2009", d.Created)
	}
	if d.Updated.Year() != 2024 {
		t.Errorf("Updated = %v, want year 2024", d.Updated)
	}
}

func TestLoadWithoutFrontMatter(t *testing.T) {
	s := newTestStore(t)

	body := "<p>bare body, no metadata</p>"
	path := filepath.Join(s.Dir(), "bare.html")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	d, err := s.Load("bare")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Body != body {
		t.Errorf("Body = %q, want %q", d.Body, body)
	}
	if d.Title != "bare" {
		t.Errorf("Title should fall back to slug, got %q", d.Title)
	}
}

func TestListSortsByUpdated(t *testing.T) {
	s := newTestStore(t)

	older, err := s.Create("Older Post", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := s.Create("Newer Post", nil); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Force a distinct, later update on the older draft.
	time.Sleep(10 * time.Millisecond)
	older.Body = "<p>edited</p>"
	if err := s.Save(older); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List returned %d drafts, want 2", len(list))
	}
	if list[0].Slug != "older-post" {
		t.Errorf("most recently updated first: got %q", list[0].Slug)
	}
}

func TestBridge(t *testing.T) {
	d := &Draft{Slug: "b", Body: "<p>original</p>"}
	b := NewBridge(d)

	if b.HTML() != "<p>original</p>" {
		t.Errorf("HTML() = %q", b.HTML())
	}
	if b.Dirty() {
		t.Error("fresh bridge reports dirty")
	}

	b.SetHTML("<p>original</p>")
	if b.Dirty() {
		t.Error("identical write should not dirty the draft")
	}

	b.SetHTML("<p>changed</p>")
	if !b.Dirty() {
		t.Error("changed write should dirty the draft")
	}
	if d.Body != "<p>changed</p>" {
		t.Errorf("draft body = %q", d.Body)
	}

	var nilBridge *Bridge
	if nilBridge.HTML() != "" {
		t.Error("nil bridge HTML should be empty")
	}
	nilBridge.SetHTML("x")
	nilBridge.Focus()

	if !strings.HasPrefix(d.Body, "<p>") {
		t.Errorf("unexpected body %q", d.Body)
	}
}
