// Package render provides the render command.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/orghtml/internal/cmd/cmdutil"
	"github.com/open-cli-collective/orghtml/internal/config"
	"github.com/open-cli-collective/orghtml/internal/view"
	"github.com/open-cli-collective/orghtml/pkg/org"
)

type renderOptions struct {
	input   string
	out     string
	noColor bool
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a document to HTML",
		Long: `Render a markdown document to HTML.

The document is read from the given file, or from stdin when the file is
omitted or "-". Inline markup such as [[url][description]], *bold*, /italic/
and [fn:name:definition] footnotes is recognized inside the text.

Because that markup is read in ordinary prose too, text such as /usr/local/
renders as italic. Escape a marker with a backslash (\/usr/local\/) or put
the text in a code span to keep it literal.`,
		Example: `  # Render a file to stdout
  orghtml render notes.md

  # Render stdin with footnotes and numbered headings
  cat notes.md | orghtml render --footnotes --heading-numbers

  # Write to a file
  orghtml render notes.md --out notes.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			opts.input = cmdutil.InputArg(args)
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runRender(opts, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "O", "", "Write HTML to this file instead of stdout")
	cmdutil.AddRenderFlags(cmd)

	return cmd
}

func runRender(opts *renderOptions, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	source, err := cmdutil.ReadInput(opts.input, stdin)
	if err != nil {
		return err
	}

	html, err := org.RenderMarkdown(source, cfg.ToOptions(), cmdutil.Highlighter(cfg))
	if err != nil {
		return err
	}

	if strings.TrimSpace(html) == "" {
		warn := view.NewRenderer(view.FormatTable, opts.noColor)
		warn.SetWriter(stderr)
		warn.Warning("Rendered document is empty")
	}

	if opts.out != "" {
		if err := os.WriteFile(opts.out, []byte(html+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	_, err = fmt.Fprintln(stdout, html)
	return err
}
