// Package drafts stores blog post drafts on disk: one HTML body per
// file, with a YAML front matter block for metadata.
package drafts

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"
)

const (
	draftExt  = ".html"
	delimiter = "---"
)

type Draft struct {
	Slug    string
	Title   string
	Tags    []string
	Created time.Time
	Updated time.Time
	Body    string
	Path    string
}

// frontMatter keeps dates as strings on disk so hand-edited values in
// any common format still parse.
type frontMatter struct {
	Title   string   `yaml:"title"`
	Tags    []string `yaml:"tags,omitempty"`
	Created string   `yaml:"created,omitempty"`
	Updated string   `yaml:"updated,omitempty"`
}

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("drafts: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("drafts: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(slug string) string {
	return filepath.Join(s.dir, slug+draftExt)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify reduces a title to a filesystem-safe slug.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Create makes a new empty draft for the title. It refuses to clobber
// an existing slug.
func (s *Store) Create(title string, tags []string) (*Draft, error) {
	slug := Slugify(title)
	if slug == "" {
		return nil, fmt.Errorf("drafts: title %q produces an empty slug", title)
	}
	if _, err := os.Stat(s.path(slug)); err == nil {
		return nil, fmt.Errorf("drafts: %q already exists", slug)
	}

	now := time.Now()
	d := &Draft{
		Slug:    slug,
		Title:   title,
		Tags:    tags,
		Created: now,
		Updated: now,
		Path:    s.path(slug),
	}
	if err := s.Save(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) Load(slug string) (*Draft, error) {
	path := s.path(slug)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("drafts: load %q: %w", slug, err)
	}

	d := &Draft{Slug: slug, Path: path}
	fm, body := splitFrontMatter(raw)
	d.Body = body

	if fm != nil {
		var meta frontMatter
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return nil, fmt.Errorf("drafts: front matter of %q: %w", slug, err)
		}
		d.Title = meta.Title
		d.Tags = meta.Tags
		d.Created = parseWhen(meta.Created)
		d.Updated = parseWhen(meta.Updated)
	}
	if d.Title == "" {
		d.Title = slug
	}
	return d, nil
}

// Save writes the draft and stamps its update time.
func (s *Store) Save(d *Draft) error {
	if d == nil {
		return fmt.Errorf("drafts: nil draft")
	}
	if d.Slug == "" {
		return fmt.Errorf("drafts: draft has no slug")
	}
	d.Updated = time.Now()
	if d.Created.IsZero() {
		d.Created = d.Updated
	}
	d.Path = s.path(d.Slug)

	meta := frontMatter{
		Title:   d.Title,
		Tags:    d.Tags,
		Created: d.Created.Format(time.RFC3339),
		Updated: d.Updated.Format(time.RFC3339),
	}
	head, err := yaml.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("drafts: marshal front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.Write(head)
	buf.WriteString(delimiter + "\n")
	buf.WriteString(d.Body)

	if err := os.WriteFile(d.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("drafts: write %q: %w", d.Slug, err)
	}
	return nil
}

// List returns every draft, most recently updated first.
func (s *Store) List() ([]*Draft, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("drafts: list: %w", err)
	}

	var out []*Draft
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), draftExt) {
			continue
		}
		slug := strings.TrimSuffix(e.Name(), draftExt)
		d, err := s.Load(slug)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Updated.After(out[j].Updated)
	})
	return out, nil
}

func splitFrontMatter(raw []byte) (meta []byte, body string) {
	text := string(raw)
	if !strings.HasPrefix(text, delimiter) {
		return nil, text
	}
	parts := strings.SplitN(text, delimiter, 3)
	if len(parts) < 3 {
		return nil, text
	}
	return []byte(parts[1]), strings.TrimPrefix(parts[2], "\n")
}

func parseWhen(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	when, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}
	}
	return when
}
