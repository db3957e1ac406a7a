// Package root provides the root command for the orghtml CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/orghtml/internal/cmd/completion"
	"github.com/open-cli-collective/orghtml/internal/cmd/configcmd"
	"github.com/open-cli-collective/orghtml/internal/cmd/footnotes"
	initcmd "github.com/open-cli-collective/orghtml/internal/cmd/init"
	"github.com/open-cli-collective/orghtml/internal/cmd/render"
	"github.com/open-cli-collective/orghtml/internal/cmd/tags"
	"github.com/open-cli-collective/orghtml/internal/cmd/view"
	"github.com/open-cli-collective/orghtml/internal/version"
)

// NewCmdRoot creates the root command for orghtml.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orghtml",
		Short: "Render documents with org-style inline markup to HTML",
		Long: `orghtml renders markdown documents to HTML, understanding org-style
inline markup in the text: *bold*, /italic/, =code=, [[url][links]],
[fn:name:definition] footnotes, and more.

Get started by running: orghtml init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/orghtml/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(view.NewCmdView())
	cmd.AddCommand(footnotes.NewCmdFootnotes())
	cmd.AddCommand(tags.NewCmdTags())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
