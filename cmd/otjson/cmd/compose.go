package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newComposeCmd creates the compose subcommand.
func newComposeCmd() *cobra.Command {
	var bPath string

	cmd := &cobra.Command{
		Use:   "compose <a>",
		Short: "Fuse two sequential operations into one",
		Long: `Compose reads operation a (a file path, or "-" for stdin) and
operation b (via --b), and writes a single equivalent operation to
stdout: applying the result to a document is equivalent to applying
a followed by b.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readOperation(args[0])
			if err != nil {
				return err
			}
			b, err := readOperation(bPath)
			if err != nil {
				return err
			}

			composed := a.Compose(b)
			logger.Debug("composed operation", zap.Int("components", len(composed)))
			return writeJSON(cmd.OutOrStdout(), composed)
		},
	}

	cmd.Flags().StringVar(&bPath, "b", "-", "operation b file (default: stdin)")
	return cmd
}
