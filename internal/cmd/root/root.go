// Package root provides the root command for the duplexmd CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/duplexmd/duplexmd/internal/cmd/check"
	"github.com/duplexmd/duplexmd/internal/cmd/initcmd"
	"github.com/duplexmd/duplexmd/internal/cmd/render"
	"github.com/duplexmd/duplexmd/internal/cmd/reverse"
	"github.com/duplexmd/duplexmd/internal/version"
)

// NewCmdRoot creates the root command for duplexmd.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplexmd",
		Short: "A two-way Markdown/HTML converter",
		Long: `duplexmd converts Markdown to HTML and reconstructs the original
Markdown from that HTML, even after a rich-text editor has modified it.

Rendering with --bidirectional tags every element with its source token
so the reverse direction restores the author's exact spelling.

Get started by running: duplexmd init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/duplexmd/config.yml)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate("duplexmd version " + version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(reverse.NewCmdReverse())
	cmd.AddCommand(check.NewCmdCheck())

	return cmd
}
