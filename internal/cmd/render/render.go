// Package render provides the render command for duplexmd.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/duplexmd/duplexmd/internal/config"
	"github.com/duplexmd/duplexmd/pkg/duplex"
	"github.com/duplexmd/duplexmd/pkg/highlight"
)

type renderOptions struct {
	bidirectional   bool
	inlineStyles    bool
	lazyLinefeeds   bool
	allowUnsafeURLs bool
	highlight       bool
	classPrefix     string
	style           string
	engine          string
	output          string
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render Markdown to HTML",
		Long: `Render Markdown from a file (or stdin) to an HTML fragment.

With --bidirectional every generated element carries the literal source
token that produced it, so "duplexmd reverse" can restore the original
text exactly.`,
		Example: `  # Render a file
  duplexmd render notes.md

  # Render stdin with provenance tagging
  cat notes.md | duplexmd render --bidirectional

  # Compare against stock GitHub-flavored output
  duplexmd render notes.md --engine gfm`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.bidirectional, "bidirectional", "b", false, "tag elements with their source tokens")
	cmd.Flags().BoolVar(&opts.inlineStyles, "inline-styles", false, "emit style attributes instead of classes")
	cmd.Flags().BoolVar(&opts.lazyLinefeeds, "lazy-linefeeds", false, "treat every newline as a hard line break")
	cmd.Flags().BoolVar(&opts.allowUnsafeURLs, "allow-unsafe-urls", false, "disable the URL scheme allow-list")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "highlight fenced code with chroma")
	cmd.Flags().StringVar(&opts.classPrefix, "class-prefix", "", "prefix for generated class names")
	cmd.Flags().StringVar(&opts.style, "style", "", "chroma style for --highlight")
	cmd.Flags().StringVar(&opts.engine, "engine", "native", "rendering engine: native, gfm")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "write output to file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *renderOptions) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	var html string
	switch opts.engine {
	case "native":
		engineOpts, err := engineOptions(cmd, opts)
		if err != nil {
			return err
		}
		html, err = duplex.Render(input, engineOpts)
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	case "gfm":
		html, err = renderGFM(input)
		if err != nil {
			return fmt.Errorf("gfm render failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown engine %q (expected native or gfm)", opts.engine)
	}

	return writeOutput(cmd, opts.output, html)
}

// engineOptions merges the config file defaults with any flags the user
// set explicitly.
func engineOptions(cmd *cobra.Command, opts *renderOptions) (duplex.Options, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(cfgPath)
	if err != nil {
		return duplex.Options{}, err
	}
	if err := cfg.Validate(); err != nil {
		return duplex.Options{}, err
	}

	o := cfg.Options()
	flags := cmd.Flags()
	if flags.Changed("bidirectional") {
		o.Bidirectional = opts.bidirectional
	}
	if flags.Changed("inline-styles") {
		o.InlineStyles = opts.inlineStyles
	}
	if flags.Changed("lazy-linefeeds") {
		o.LazyLinefeeds = opts.lazyLinefeeds
	}
	if flags.Changed("allow-unsafe-urls") {
		o.AllowUnsafeURLs = opts.allowUnsafeURLs
	}
	if flags.Changed("class-prefix") {
		o.ClassPrefix = opts.classPrefix
	}

	useHighlight := cfg.Highlight
	if flags.Changed("highlight") {
		useHighlight = opts.highlight
	}
	if useHighlight {
		style := cfg.HighlightStyle
		if flags.Changed("style") {
			style = opts.style
		}
		o.FencePlugin = highlight.New(style)
	}
	return o, nil
}

// renderGFM converts through goldmark with the GFM extensions, as a
// reference point for comparing the constrained dialect against stock
// GitHub-flavored rendering. No provenance is available on this path.
func renderGFM(input string) (string, error) {
	gfm := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := gfm.Convert([]byte(input), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
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

func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
