package configcmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/orghtml/internal/cmd/cmdutil"
	"github.com/open-cli-collective/orghtml/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current orghtml configuration with source indicators.`,
		Example: `  # Show current config
  orghtml config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmdutil.ConfigPath(cmd), noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runShow(configPath string, noColor bool, out io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(out, "%-22s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(out, "-")
			return
		}

		fmt.Fprint(out, value)

		// Determine source
		source := "config"
		if v := os.Getenv(envVar); envVar != "" && v != "" {
			source = envVar
		} else if fileErr != nil || fileValue != value {
			source = "default"
		}

		_, _ = dim.Fprintf(out, "  (source: %s)\n", source)
	}
	printBool := func(label string, value, fileValue bool, envVar string) {
		printField(label, strconv.FormatBool(value), strconv.FormatBool(fileValue), envVar)
	}

	printBool("Skip tables", cfg.SkipTables, fileCfg.SkipTables, "ORGHTML_SKIP_TABLES")
	printBool("Skip highlighting", cfg.SkipSyntaxHighlight, fileCfg.SkipSyntaxHighlight, "ORGHTML_SKIP_SYNTAX_HIGHLIGHT")
	printBool("Export footnotes", cfg.ExportFootnotes, fileCfg.ExportFootnotes, "ORGHTML_EXPORT_FOOTNOTES")
	printField("Footnotes title", cfg.FootnotesTitle, fileCfg.FootnotesTitle, "ORGHTML_FOOTNOTES_TITLE")
	printBool("Heading numbers", cfg.ExportHeadingNumber, fileCfg.ExportHeadingNumber, "ORGHTML_EXPORT_HEADING_NUMBER")
	printBool("TODO keywords", cfg.ExportTodo, fileCfg.ExportTodo, "ORGHTML_EXPORT_TODO")
	printBool("Sub/superscripts", cfg.UseSubSuperscripts, fileCfg.UseSubSuperscripts, "ORGHTML_USE_SUB_SUPERSCRIPTS")
	printField("Markup file", cfg.MarkupFile, fileCfg.MarkupFile, "ORGHTML_MARKUP_FILE")
	printField("Highlight style", cfg.HighlightStyle, fileCfg.HighlightStyle, "ORGHTML_HIGHLIGHT_STYLE")

	if len(cfg.LinkAbbrevs) > 0 {
		printField("Link abbreviations", joinAbbrevs(cfg.LinkAbbrevs), joinAbbrevs(fileCfg.LinkAbbrevs), "")
	}

	fmt.Fprintln(out)
	_, _ = dim.Fprintf(out, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(out, "(file not found)")
	}

	return nil
}

func joinAbbrevs(abbrevs map[string]string) string {
	pairs := make([]string, 0, len(abbrevs))
	for k, v := range abbrevs {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ", ")
}
