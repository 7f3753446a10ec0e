package new

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/fennmarsh/scribe/internal/state"
	"github.com/fennmarsh/scribe/internal/tui/composer"
)

func NewCmdNew(s *state.State) *cobra.Command {
	var tags string
	var open bool

	cmd := &cobra.Command{
		Use:     "new [title]",
		Aliases: []string{"n"},
		Short:   "Create a new blog post draft.",
		Long: heredoc.Doc(`
			The new command creates an empty draft in the drafts directory.
			The title is slugified into the file name; tags go into the
			draft's front matter.

			Examples:
			  scribe new "My First Post"
			  scribe new "Benchmark Notes" --tags "go,performance" --open
		`),
		Example: `scribe new "My First Post" --open`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("no title given; try 'scribe new [title]'")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, strings.Join(args, " "), tags, open)
		},
	}

	cmd.Flags().StringVarP(&tags, "tags", "t", "", "Comma-separated tags for the draft.")
	cmd.Flags().BoolVarP(&open, "open", "o", false, "Open the new draft in the composer.")
	return cmd
}

func run(s *state.State, title, tags string, open bool) error {
	var tagList []string
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tagList = append(tagList, tag)
		}
	}

	draft, err := s.Store.Create(title, tagList)
	if err != nil {
		return err
	}
	fmt.Printf("Created draft %q at %s\n", draft.Slug, draft.Path)

	if open {
		return composer.Run(s, draft)
	}
	return nil
}
