// Package cli wires the invsim commands: simulate, example-config, formats and serve.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rpgo/investment-simulator/internal/config"
	"github.com/rpgo/investment-simulator/pkg/logger"
)

// app carries state shared by subcommands once the root pre-run has loaded settings.
type app struct {
	v        *viper.Viper
	settings *config.Settings
	log      zerolog.Logger
}

// NewRootCommand builds the command tree. Output goes to the command's configured writers.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.NewViper()}
	var settingsFile string

	root := &cobra.Command{
		Use:           "invsim",
		Short:         "Monte Carlo investment portfolio simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.LoadSettings(a.v, settingsFile)
			if err != nil {
				return err
			}
			a.settings = s
			a.log = logger.New(logger.Config{
				Level:  s.Log.Level,
				Pretty: s.Log.Pretty,
				Out:    cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&settingsFile, "settings", "", "application settings file (yaml, json or toml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error, disabled")
	pf.Bool("log-pretty", false, "human readable console logs")
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.pretty", pf.Lookup("log-pretty"))

	root.AddCommand(
		newSimulateCommand(a),
		newExampleConfigCommand(),
		newFormatsCommand(),
		newServeCommand(a),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}
