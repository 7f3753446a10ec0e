package export

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/fennmarsh/scribe/internal/drafts"
	"github.com/fennmarsh/scribe/internal/state"
)

// Drafts store the preview-derived HTML body; export wraps it into a
// standalone page. The body goes through the sanitization gate once
// more on the way out, so hand-edited draft files get the same
// treatment as composer output.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- if .Tags}}
<meta name="keywords" content="{{.Tags}}">
{{- end}}
</head>
<body>
<article>
<h1>{{.Title}}</h1>
{{.Body}}
</article>
</body>
</html>
`))

type pageData struct {
	Title string
	Tags  string
	Body  template.HTML
}

func NewCmdExport(s *state.State) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "export [slug]",
		Aliases: []string{"x"},
		Short:   "Export a draft as a standalone HTML page.",
		Long: heredoc.Doc(`
			The export command wraps a draft's body into a complete HTML page
			and writes it to disk. The body is sanitized on the way out with
			the same policy the composer's preview uses.

			Examples:
			  scribe export my-first-post
			  scribe export my-first-post --out ~/blog/posts/first.html
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(s, args[0], out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default: [slug].html in the working directory).")
	return cmd
}

func run(s *state.State, slug, out string) error {
	draft, err := s.Store.Load(slug)
	if err != nil {
		return err
	}
	if out == "" {
		out = draft.Slug + ".html"
	}

	page, err := renderPage(s, draft)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
		return fmt.Errorf("export %q: %w", slug, err)
	}
	fmt.Printf("Exported %q to %s\n", draft.Slug, out)
	return nil
}

func renderPage(s *state.State, draft *drafts.Draft) (string, error) {
	gate := s.Config.Gate()

	var sb strings.Builder
	err := pageTemplate.Execute(&sb, pageData{
		Title: draft.Title,
		Tags:  strings.Join(draft.Tags, ", "),
		Body:  template.HTML(gate.Sanitize(draft.Body, nil)),
	})
	if err != nil {
		return "", fmt.Errorf("render page for %q: %w", draft.Slug, err)
	}
	return sb.String(), nil
}
