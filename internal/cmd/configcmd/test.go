package configcmd

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/orghtml/internal/cmd/cmdutil"
	"github.com/open-cli-collective/orghtml/internal/config"
	"github.com/open-cli-collective/orghtml/internal/view"
	"github.com/open-cli-collective/orghtml/pkg/org"
)

// sampleDocument exercises the inline formatter, footnotes and a highlighted block.
const sampleDocument = "# Check\n\nSome *bold* [[https://example.com][link]][fn:1:note].\n\n```go\nfmt.Println(1)\n```\n"

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Check that the configuration renders",
		Long: `Check that the orghtml configuration loads, that the markup file parses,
that the highlighting style exists, and that a sample document renders with it.`,
		Example: `  # Test configuration
  orghtml config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			cfg, err := config.LoadWithEnv(cmdutil.ConfigPath(cmd))
			if err != nil {
				return fmt.Errorf("failed to load config: %w (run 'orghtml init' to configure)", err)
			}
			return runTest(cfg, noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runTest(cfg *config.Config, noColor bool, out io.Writer) error {
	r := view.NewRenderer(view.FormatTable, noColor)
	r.SetWriter(out)

	if err := cfg.Validate(); err != nil {
		r.Error("Invalid configuration: " + err.Error())
		fmt.Fprintln(out, "\nReconfigure with: orghtml init")
		return fmt.Errorf("invalid config: %w", err)
	}
	r.Success("Configuration valid")

	if cfg.MarkupFile != "" {
		if _, err := org.LoadMarkup(cfg.MarkupFile); err != nil {
			r.Error("Markup file failed to load: " + err.Error())
			return err
		}
		r.Success(fmt.Sprintf("Markup file %s loaded", cfg.MarkupFile))
	}

	if cfg.HighlightStyle != "" {
		if _, ok := styles.Registry[cfg.HighlightStyle]; !ok {
			r.Error("Unknown highlighting style: " + cfg.HighlightStyle)
			fmt.Fprintln(out, "\nPick a style with: orghtml init")
			return fmt.Errorf("unknown highlighting style %q", cfg.HighlightStyle)
		}
		r.Success(fmt.Sprintf("Highlighting style %s found", cfg.HighlightStyle))
		if cfg.SkipSyntaxHighlight {
			r.Warning(fmt.Sprintf("Highlighting style %s is unused while syntax highlighting is skipped", cfg.HighlightStyle))
		}
	}

	if _, err := org.RenderMarkdown([]byte(sampleDocument), cfg.ToOptions(), cmdutil.Highlighter(cfg)); err != nil {
		r.Error("Sample document failed to render: " + err.Error())
		return fmt.Errorf("render failed: %w", err)
	}
	r.Success("Sample document rendered")

	return nil
}
