// Package view provides the view command.
package view

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/orghtml/internal/cmd/cmdutil"
	"github.com/open-cli-collective/orghtml/internal/config"
	outview "github.com/open-cli-collective/orghtml/internal/view"
	"github.com/open-cli-collective/orghtml/pkg/org"
)

type viewOptions struct {
	input   string
	raw     bool
	web     bool
	output  string
	noColor bool
}

// NewCmdView creates the view command.
func NewCmdView() *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view [file|-]",
		Short: "Preview a rendered document",
		Long: `Render a document and preview it in the terminal.

By default the rendered HTML is converted back to markdown, which reads
better in a terminal. Use --raw to see the HTML itself, or --web to open
it in a browser. See "orghtml render --help" for how inline markup is read.`,
		Example: `  # Preview a document
  orghtml view notes.md

  # Show the rendered HTML
  orghtml view notes.md --raw

  # Open in browser
  orghtml view notes.md --web`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.input = cmdutil.InputArg(args)
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return runView(opts, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), openBrowser)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Show the rendered HTML")
	cmd.Flags().BoolVarP(&opts.web, "web", "w", false, "Open in browser instead of displaying")
	cmdutil.AddRenderFlags(cmd)

	return cmd
}

func runView(opts *viewOptions, cfg *config.Config, stdin io.Reader, stdout io.Writer, open func(string) error) error {
	// Validate output format
	if err := outview.ValidateFormat(opts.output); err != nil {
		return err
	}

	source, err := cmdutil.ReadInput(opts.input, stdin)
	if err != nil {
		return err
	}

	rendered, err := org.RenderMarkdown(source, cfg.ToOptions(), cmdutil.Highlighter(cfg))
	if err != nil {
		return err
	}

	if opts.web {
		path, err := writePage(opts.input, rendered)
		if err != nil {
			return err
		}
		return open(path)
	}

	renderer := outview.NewRenderer(outview.Format(opts.output), opts.noColor)
	renderer.SetWriter(stdout)

	if strings.TrimSpace(rendered) == "" {
		renderer.RenderText("(No content)")
		return nil
	}
	return renderer.RenderHTML(rendered, opts.raw)
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>
`

// writePage saves body as a standalone HTML page in a temp file and returns its path.
func writePage(input, body string) (string, error) {
	title := "orghtml preview"
	if input != "" && input != "-" {
		title = filepath.Base(input)
	}

	f, err := os.CreateTemp("", "orghtml-*.html")
	if err != nil {
		return "", fmt.Errorf("failed to create preview file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := fmt.Fprintf(f, pageTemplate, org.Escape(title), body); err != nil {
		return "", fmt.Errorf("failed to write preview file: %w", err)
	}
	return f.Name(), nil
}

func openBrowser(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return fmt.Errorf("unsupported platform")
	}

	return cmd.Start()
}
