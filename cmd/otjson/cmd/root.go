// Package cmd implements the otjson CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/brunoga/otjson/otlog"
)

var (
	cfgFile string
	debug   bool
	logger  *zap.Logger
)

// NewRootCmd creates the root otjson command with all subcommands
// registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "otjson",
		Short:         "otjson - a JSON operational transformation engine",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (none is read unless this is set)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(newApplyCmd())
	root.AddCommand(newTransformCmd())
	root.AddCommand(newInvertCmd())
	root.AddCommand(newComposeCmd())

	return root
}

// initConfig wires viper up to an optional --config file plus
// OTJSON_-prefixed environment variables, and builds the logger every
// subcommand shares.
func initConfig(cmd *cobra.Command) error {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	}
	v.SetEnvPrefix("OTJSON")
	v.AutomaticEnv()

	if v.IsSet("debug") {
		debug = v.GetBool("debug")
	}

	var err error
	logger, err = otlog.New(debug)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	return nil
}
