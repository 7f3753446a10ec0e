package ls

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fennmarsh/scribe/internal/state"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0AF"))
	slugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#cba6f7"))
)

func NewCmdLs(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List drafts, most recently updated first.",
		Long: heredoc.Doc(`
			The ls command lists every draft in the drafts directory with its
			slug, tags, and last update time.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s)
		},
	}
	return cmd
}

func run(s *state.State) error {
	list, err := s.Store.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No drafts yet. Create one with 'scribe new [title]'.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%d draft(s) in %s", len(list), s.Store.Dir())))
	for _, d := range list {
		line := fmt.Sprintf(
			"%-40s %s %s",
			d.Title,
			slugStyle.Render(d.Slug),
			d.Updated.Format("2006-01-02 15:04"),
		)
		if len(d.Tags) > 0 {
			line += "  " + tagStyle.Render("["+strings.Join(d.Tags, ", ")+"]")
		}
		fmt.Println(line)
	}
	return nil
}
