package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brunoga/otjson"
)

// newInvertCmd creates the invert subcommand.
func newInvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invert <operation>",
		Short: "Invert an operation",
		Long: `Invert reads an operation (a file path, or "-" for stdin) and writes
the operation that undoes it, given the same document it was
originally applied against.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := readOperation(args[0])
			if err != nil {
				return err
			}
			inverted, err := op.Invert(otjson.Default)
			if err != nil {
				logger.Error("invert failed", zap.Error(err))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), inverted)
		},
	}
	return cmd
}
