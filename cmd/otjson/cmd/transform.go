package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brunoga/otjson"
)

// newTransformCmd creates the transform subcommand.
func newTransformCmd() *cobra.Command {
	var bPath string

	cmd := &cobra.Command{
		Use:   "transform <a>",
		Short: "Rebase two concurrent operations against each other",
		Long: `Transform reads operation a (a file path, or "-" for stdin) and
operation b (via --b), both assumed to apply against the same base
document, and writes {"a":a', "b":b'} to stdout, where a' and b'
are the rebased operations such that applying a then b' converges
with applying b then a'.`,
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

			aPrime, bPrime, err := otjson.Transform(a, b, otjson.Default)
			if err != nil {
				logger.Error("transform failed", zap.Error(err))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]otjson.Operation{
				"a": aPrime,
				"b": bPrime,
			})
		},
	}

	cmd.Flags().StringVar(&bPath, "b", "-", "operation b file (default: stdin)")
	return cmd
}
