package compose

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/fennmarsh/scribe/internal/drafts"
	"github.com/fennmarsh/scribe/internal/state"
	"github.com/fennmarsh/scribe/internal/tui/composer"
)

func NewCmdCompose(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compose [slug]",
		Aliases: []string{"c", "edit"},
		Short:   "Open a draft in the composer.",
		Long: heredoc.Doc(`
			The compose command opens a draft in the modal composer: an editing
			pane on the left, a live preview on the right. F2/F3/F4 switch the
			editing pane between rich HTML, markdown, and TeX math; each switch
			starts the pane empty while the preview carries the content forward.

			Esc applies the preview to the draft and saves. Ctrl+C discards.

			Without a slug, pick a draft with the fuzzy finder.
		`),
		Example: "scribe compose my-first-post",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, args)
		},
	}
	return cmd
}

func run(s *state.State, args []string) error {
	var slug string
	if len(args) > 0 {
		slug = args[0]
	} else {
		picked, err := pick(s.Store)
		if err != nil {
			return err
		}
		slug = picked
	}

	draft, err := s.Store.Load(slug)
	if err != nil {
		return fmt.Errorf("load draft %q: %w", slug, err)
	}

	return composer.Run(s, draft)
}

// pick runs the fuzzy finder over the store's drafts, previewing
// each draft's metadata and the start of its body.
func pick(store *drafts.Store) (string, error) {
	list, err := store.List()
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", fmt.Errorf("no drafts yet; create one with 'scribe new [title]'")
	}

	idx, err := fuzzyfinder.Find(
		list,
		func(i int) string {
			return list[i].Title
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i < 0 {
				return ""
			}
			d := list[i]
			lines := []string{
				"Title: " + d.Title,
				"Slug:  " + d.Slug,
			}
			if len(d.Tags) > 0 {
				lines = append(lines, "Tags:  "+strings.Join(d.Tags, ", "))
			}
			lines = append(lines, "", excerpt(d.Body, 500))
			return strings.Join(lines, "\n")
		}),
	)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return "", fmt.Errorf("no draft selected")
		}
		return "", err
	}
	return list[idx].Slug, nil
}

func excerpt(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	return body[:max] + "…"
}
