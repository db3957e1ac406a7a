// Package footnotes provides the footnotes command.
package footnotes

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/orghtml/internal/cmd/cmdutil"
	"github.com/open-cli-collective/orghtml/internal/config"
	"github.com/open-cli-collective/orghtml/internal/view"
	"github.com/open-cli-collective/orghtml/pkg/org"
)

// maxDefinitionWidth bounds the definition column in table output.
const maxDefinitionWidth = 60

type footnotesOptions struct {
	input   string
	output  string
	noColor bool
}

// NewCmdFootnotes creates the footnotes command.
func NewCmdFootnotes() *cobra.Command {
	opts := &footnotesOptions{}

	cmd := &cobra.Command{
		Use:   "footnotes [file|-]",
		Short: "List the footnotes of a document",
		Long: `Render a document and list the footnotes it defines, in the order
they are numbered in the footnotes section.`,
		Example: `  # List footnotes
  orghtml footnotes notes.md

  # As JSON
  orghtml footnotes notes.md -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.input = cmdutil.InputArg(args)
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return runFootnotes(opts, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	return cmd
}

func runFootnotes(opts *footnotesOptions, cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	source, err := cmdutil.ReadInput(opts.input, stdin)
	if err != nil {
		return err
	}

	renderOpts := cfg.ToOptions()
	renderOpts.ExportFootnotes = true
	// the listing needs no highlighted code
	renderOpts.SkipSyntaxHighlight = true

	doc, err := org.RenderMarkdownDocument(source, renderOpts, nil)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(stdout)

	if len(doc.Footnotes) == 0 && opts.output != string(view.FormatJSON) {
		renderer.RenderText("No footnotes found.")
		return nil
	}

	rows := make([][]string, 0, len(doc.Footnotes))
	for _, fn := range doc.Footnotes {
		def := view.OneLine(fn.Definition)
		if opts.output != string(view.FormatJSON) {
			def = view.Truncate(def, maxDefinitionWidth)
		}
		rows = append(rows, []string{fn.Name, def})
	}
	renderer.RenderTable([]string{"NAME", "DEFINITION"}, rows)
	return nil
}
