package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brunoga/otjson"
)

// newApplyCmd creates the apply subcommand.
func newApplyCmd() *cobra.Command {
	var opPath string

	cmd := &cobra.Command{
		Use:   "apply <document>",
		Short: "Apply an operation to a JSON document",
		Long: `Apply reads a JSON document (a file path, or "-" for stdin) and an
operation (via --op, a file path or "-" for stdin, in either wire
array or bare-object form), applies the operation, and writes the
resulting document to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := readDocument(args[0])
			if err != nil {
				return err
			}
			op, err := readOperation(opPath)
			if err != nil {
				return err
			}

			if err := op.Apply(&value, otjson.Default); err != nil {
				logger.Error("apply failed", zap.Error(err))
				return err
			}
			logger.Debug("applied operation", zap.Int("components", len(op)))
			return writeJSON(cmd.OutOrStdout(), value)
		},
	}

	cmd.Flags().StringVar(&opPath, "op", "-", "operation file (default: stdin)")
	return cmd
}
