// Package initcmd provides the init command for duplexmd.
package initcmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/duplexmd/duplexmd/internal/config"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize duplexmd configuration",
		Long: `Initialize duplexmd with your default render options.

This command walks through the options applied to every render
invocation and saves them to ~/.config/duplexmd/config.yml. Any of them
can still be overridden per call with flags.`,
		Example: `  # Interactive setup
  duplexmd init`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runInit(path)
		},
	}
	return cmd
}

func runInit(configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
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
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{
		ClassPrefix:    "md-",
		HighlightStyle: "github",
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Bidirectional rendering").
				Description("Tag every element with its source token for exact reconstruction").
				Value(&cfg.Bidirectional),

			huh.NewConfirm().
				Title("Inline styles").
				Description("Emit style attributes instead of prefixed classes").
				Value(&cfg.InlineStyles),

			huh.NewInput().
				Title("Class prefix").
				Description("Prefix for generated class names").
				Placeholder("md-").
				Value(&cfg.ClassPrefix).
				Validate(func(s string) error {
					return (&config.Config{ClassPrefix: s}).Validate()
				}),

			huh.NewConfirm().
				Title("Syntax highlighting").
				Description("Render fenced code through chroma").
				Value(&cfg.Highlight),

			huh.NewSelect[string]().
				Title("Highlight style").
				Options(huh.NewOptions("github", "monokai", "dracula", "nord", "solarized-light")...).
				Value(&cfg.HighlightStyle),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}
