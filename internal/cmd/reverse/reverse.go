// Package reverse provides the reverse command for duplexmd.
package reverse

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/duplexmd/duplexmd/internal/config"
	"github.com/duplexmd/duplexmd/pkg/duplex"
	"github.com/duplexmd/duplexmd/pkg/highlight"
)

type reverseOptions struct {
	importForeign bool
	highlight     bool
	output        string
}

// NewCmdReverse creates the reverse command.
func NewCmdReverse() *cobra.Command {
	opts := &reverseOptions{}

	cmd := &cobra.Command{
		Use:   "reverse [file]",
		Short: "Reconstruct Markdown from rendered HTML",
		Long: `Reconstruct Markdown from an HTML fragment, typically one produced by
"duplexmd render --bidirectional" and edited afterwards. Provenance
attributes restore the original spelling; elements without them fall
back to canonical Markdown syntax.`,
		Example: `  # Round-trip a rendered fragment
  duplexmd render notes.md -b | duplexmd reverse

  # Convert foreign markup pasted into the tree as well
  duplexmd reverse edited.html --import-foreign`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReverse(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.importForeign, "import-foreign", false, "convert unknown elements instead of passing their text through")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "recover fences rendered by the chroma plugin")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "write output to file instead of stdout")

	return cmd
}

func runReverse(cmd *cobra.Command, args []string, opts *reverseOptions) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(cfgPath)
	if err != nil {
		return err
	}

	o := duplex.Options{ImportForeign: opts.importForeign}
	if opts.highlight || cfg.Highlight {
		o.FencePlugin = highlight.New(cfg.HighlightStyle)
	}

	markdown, err := duplex.Reconstruct(input, o)
	if err != nil {
		return fmt.Errorf("reconstruction failed: %w", err)
	}

	if opts.output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), markdown)
		return nil
	}
	if err := os.WriteFile(opts.output, []byte(markdown+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}
	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
