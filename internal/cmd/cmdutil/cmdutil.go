// Package cmdutil holds helpers shared by the orghtml commands.
package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/orghtml/internal/config"
	"github.com/open-cli-collective/orghtml/pkg/org"
)

// Render flag names.
const (
	FlagSkipTables          = "skip-tables"
	FlagSkipSyntaxHighlight = "skip-syntax-highlight"
	FlagFootnotes           = "footnotes"
	FlagFootnotesTitle      = "footnotes-title"
	FlagHeadingNumbers      = "heading-numbers"
	FlagTodo                = "todo"
	FlagSubSuperscripts     = "sub-superscripts"
	FlagMarkupFile          = "markup-file"
	FlagStyle               = "style"
)

// AddRenderFlags registers the flags that override rendering configuration.
func AddRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool(FlagSkipTables, false, "Drop tables from the output")
	f.Bool(FlagSkipSyntaxHighlight, false, "Emit code blocks escaped instead of highlighted")
	f.Bool(FlagFootnotes, false, "Collect footnotes and append a footnotes section")
	f.String(FlagFootnotesTitle, "", "Heading of the footnotes section (default \""+org.DefaultFootnotesTitle+"\")")
	f.Bool(FlagHeadingNumbers, false, "Prefix headings with section numbers")
	f.Bool(FlagTodo, false, "Render TODO keywords on headings")
	f.Bool(FlagSubSuperscripts, false, "Render _{sub} and ^{super} scripts")
	f.String(FlagMarkupFile, "", "YAML file overriding block and emphasis tags")
	f.String(FlagStyle, "", "Highlighting style (default \""+org.DefaultHighlightStyle+"\")")

	_ = cmd.RegisterFlagCompletionFunc(FlagStyle, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return styles.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkFlagFilename(FlagMarkupFile, "yml", "yaml")
}

// ConfigPath returns the --config value, or the default path when unset.
func ConfigPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}

// LoadConfig loads file and environment configuration and applies any render
// flags set on cmd on top.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadWithEnv(ConfigPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	applyBool(cmd, FlagSkipTables, &cfg.SkipTables)
	applyBool(cmd, FlagSkipSyntaxHighlight, &cfg.SkipSyntaxHighlight)
	applyBool(cmd, FlagFootnotes, &cfg.ExportFootnotes)
	applyBool(cmd, FlagHeadingNumbers, &cfg.ExportHeadingNumber)
	applyBool(cmd, FlagTodo, &cfg.ExportTodo)
	applyBool(cmd, FlagSubSuperscripts, &cfg.UseSubSuperscripts)
	applyString(cmd, FlagFootnotesTitle, &cfg.FootnotesTitle)
	applyString(cmd, FlagMarkupFile, &cfg.MarkupFile)
	applyString(cmd, FlagStyle, &cfg.HighlightStyle)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyBool(cmd *cobra.Command, name string, dst *bool) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return
	}
	if v, err := cmd.Flags().GetBool(name); err == nil {
		*dst = v
	}
}

func applyString(cmd *cobra.Command, name string, dst *string) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return
	}
	*dst = f.Value.String()
}

// Highlighter returns the highlighter selected by cfg.
func Highlighter(cfg *config.Config) org.Highlighter {
	style := cfg.HighlightStyle
	if style == "" {
		style = org.DefaultHighlightStyle
	}
	return org.NewChromaHighlighter(style)
}

// ReadInput reads the named file, or stdin when name is empty or "-".
func ReadInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// InputArg returns the optional positional input argument.
func InputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
