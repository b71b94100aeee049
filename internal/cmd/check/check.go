// Package check provides the check command for duplexmd.
package check

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duplexmd/duplexmd/internal/view"
	"github.com/duplexmd/duplexmd/pkg/duplex"
)

// ErrMismatch is returned when a document does not survive the
// round trip.
var ErrMismatch = errors.New("document does not round-trip")

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Verify that a document survives a render/reverse round trip",
		Long: `Render the document with provenance tagging, reconstruct it from the
generated HTML, and compare the result with the input (up to trailing
whitespace). A difference usually means the document uses syntax outside
the supported dialect.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runCheck(cmd, args, noColor)
		},
	}
	return cmd
}

func runCheck(cmd *cobra.Command, args []string, noColor bool) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	opts := duplex.Options{Bidirectional: true}
	rendered, err := duplex.Render(input, opts)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	out, err := duplex.Reconstruct(rendered, opts)
	if err != nil {
		return fmt.Errorf("reconstruction failed: %w", err)
	}

	want := normalize(input)
	r := view.NewRenderer(noColor)
	r.SetWriter(cmd.OutOrStdout())
	if out == want {
		r.Successf("ok: document round-trips unchanged")
		return nil
	}
	r.Warnf("document changed after a round trip:")
	r.Diff(want, out)
	return ErrMismatch
}

// normalize applies the same whitespace rules Reconstruct guarantees on
// its output, so the comparison does not flag trailing newlines or
// extra blank lines.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(s)
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
