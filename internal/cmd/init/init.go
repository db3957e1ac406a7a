// Package init provides the init command for orghtml.
package init

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/orghtml/internal/cmd/cmdutil"
	"github.com/open-cli-collective/orghtml/internal/config"
	"github.com/open-cli-collective/orghtml/pkg/org"
)

type initOptions struct {
	configPath string
	defaults   bool
	force      bool
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize orghtml configuration",
		Long: `Initialize orghtml with your preferred rendering defaults.

This command will guide you through choosing which parts of a document
are exported (tables, footnotes, heading numbers, TODO keywords) and how
code is highlighted. The configuration will be saved to
~/.config/orghtml/config.yml unless --config is given.`,
		Example: `  # Interactive setup
  orghtml init

  # Write the built-in defaults without prompting
  orghtml init --defaults --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath = cmdutil.ConfigPath(cmd)
			return runInit(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.defaults, "defaults", false, "Write the default configuration without prompting")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing configuration without asking")

	return cmd
}

func runInit(opts *initOptions, out io.Writer) error {
	configPath := opts.configPath

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		if opts.defaults {
			return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
		}
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(out, "Initialization cancelled.")
			return nil
		}
	}

	cfg := defaultConfig()
	if !opts.defaults {
		choices := &formChoices{exportTables: true, highlight: true}
		if err := newForm(cfg, choices).Run(); err != nil {
			return err
		}
		choices.apply(cfg)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Save configuration
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(out, "\nYou're all set! Try running:")
	fmt.Fprintln(out, "  orghtml render notes.md")
	fmt.Fprintln(out, "  orghtml view notes.md")

	return nil
}

func defaultConfig() *config.Config {
	return &config.Config{
		FootnotesTitle: org.DefaultFootnotesTitle,
		HighlightStyle: org.DefaultHighlightStyle,
	}
}

// formChoices holds answers phrased positively in the form but stored negated.
type formChoices struct {
	exportTables bool
	highlight    bool
}

func (c *formChoices) apply(cfg *config.Config) {
	cfg.SkipTables = !c.exportTables
	cfg.SkipSyntaxHighlight = !c.highlight
}

func newForm(cfg *config.Config, choices *formChoices) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Export tables?").
				Affirmative("Yes").
				Negative("No").
				Value(&choices.exportTables),

			huh.NewConfirm().
				Title("Export footnotes?").
				Description("Collect [fn:...] definitions into a footnotes section").
				Value(&cfg.ExportFootnotes),

			huh.NewInput().
				Title("Footnotes title").
				Description("Heading of the footnotes section").
				Value(&cfg.FootnotesTitle).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Number headings?").
				Value(&cfg.ExportHeadingNumber),

			huh.NewConfirm().
				Title("Show TODO keywords on headings?").
				Value(&cfg.ExportTodo),

			huh.NewConfirm().
				Title("Render _{sub} and ^{super} scripts?").
				Value(&cfg.UseSubSuperscripts),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Highlight source blocks?").
				Value(&choices.highlight),

			huh.NewSelect[string]().
				Title("Highlighting style").
				Options(huh.NewOptions(styles.Names()...)...).
				Value(&cfg.HighlightStyle),

			huh.NewInput().
				Title("Markup file (optional)").
				Description("YAML file overriding block and emphasis tags").
				Value(&cfg.MarkupFile),
		),
	)
}
