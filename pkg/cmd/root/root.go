package root

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fennmarsh/scribe/internal/drafts"
	"github.com/fennmarsh/scribe/internal/state"
	"github.com/fennmarsh/scribe/pkg/cmd/compose"
	"github.com/fennmarsh/scribe/pkg/cmd/export"
	"github.com/fennmarsh/scribe/pkg/cmd/ls"
	"github.com/fennmarsh/scribe/pkg/cmd/new"
)

var draftsDir string

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "scribe",
		Aliases: []string{"sc"},
		Short:   "Draft blog posts with a multi-mode composer.",
		Long: `A drafting tool for blog posts. Each draft opens in a modal composer
with three editing modes (rich HTML, markdown, TeX math) and a live
sanitized preview beside the editing pane.

  scribe new "My First Post"
  scribe compose my-first-post
  `,
		// Composing is the main activity, so it is the default.
		RunE: compose.NewCmdCompose(s).RunE,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyDraftsDir(s)
		},
	}

	cmd.PersistentFlags().
		StringVarP(
			&draftsDir,
			"draftsdir",
			"d",
			"",
			"Directory to store drafts in (overrides the config file).",
		)
	viper.BindPFlag("draftsdir", cmd.PersistentFlags().Lookup("draftsdir"))

	cmd.AddCommand(
		new.NewCmdNew(s),
		compose.NewCmdCompose(s),
		ls.NewCmdLs(s),
		export.NewCmdExport(s),
	)

	return cmd, nil
}

// applyDraftsDir re-points the store when the flag or env override
// names a different directory than the config file did.
func applyDraftsDir(s *state.State) error {
	dir := viper.GetString("draftsdir")
	if dir == "" || dir == s.Store.Dir() {
		return nil
	}

	store, err := drafts.NewStore(dir)
	if err != nil {
		return err
	}
	s.Store = store
	s.Config.DraftsDir = dir
	return nil
}
