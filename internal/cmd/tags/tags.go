// Package tags provides the tags command.
package tags

import (
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/orghtml/internal/cmd/cmdutil"
	"github.com/open-cli-collective/orghtml/internal/config"
	"github.com/open-cli-collective/orghtml/internal/view"
	"github.com/open-cli-collective/orghtml/pkg/org"
)

type tagsOptions struct {
	output  string
	noColor bool
}

// NewCmdTags creates the tags command.
func NewCmdTags() *cobra.Command {
	opts := &tagsOptions{}

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the HTML tags used for each mode",
		Long: `List the HTML element each block mode opens and the elements each
emphasis marker renders as, after applying the markup file overrides.`,
		Example: `  # Show the default tags
  orghtml tags

  # Show the tags with overrides applied
  orghtml tags --markup-file markup.yml -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return runTags(opts, cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String(cmdutil.FlagMarkupFile, "", "YAML file overriding block and emphasis tags")

	return cmd
}

func runTags(opts *tagsOptions, cfg *config.Config, stdout io.Writer) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	markup, err := org.LoadMarkup(cfg.MarkupFile)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, m := range org.Modes() {
		tag, ok := markup.BlockTags[m]
		if !ok {
			tag = "-"
		}
		rows = append(rows, []string{"block", m.String(), tag, tag})
	}

	markers := make([]string, 0, len(markup.Emphasis))
	for marker := range markup.Emphasis {
		markers = append(markers, string(marker))
	}
	sort.Strings(markers)
	for _, marker := range markers {
		tag := markup.Emphasis[marker[0]]
		rows = append(rows, []string{"emphasis", marker, tag.Open, tag.Close})
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(stdout)
	renderer.RenderTable([]string{"KIND", "NAME", "OPEN", "CLOSE"}, rows)
	return nil
}
