package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rpgo/investment-simulator/internal/config"
	"github.com/rpgo/investment-simulator/internal/output"
	"github.com/rpgo/investment-simulator/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newExampleConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config [file]",
		Short: "Write an example simulation parameter file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "simulation.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			parser := config.NewInputParser()
			if err := parser.SaveParameters(parser.CreateExampleParameters(), filename); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Example parameters written to", filename)
			return nil
		},
	}
}

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List available report formats and aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Formats:", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintln(out, "Aliases:", strings.Join(output.AvailableFormatAliases(), ", "))
			return nil
		},
	}
}

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.settings
			srv := server.New(server.Config{
				Port:           s.Server.Port,
				Log:            a.log,
				MaxSimulations: s.Server.MaxSimulations,
				Workers:        s.Simulation.Workers,
				RequestTimeout: s.Server.RequestTimeout,
				DevMode:        s.Server.DevMode,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}

	f := cmd.Flags()
	f.Int("port", 8080, "HTTP listen port")
	f.Int("max-simulations", 100_000, "largest num_simulations accepted per request")
	f.Duration("request-timeout", 60*time.Second, "per-request simulation timeout")
	f.Bool("dev", false, "development mode (disables response compression)")
	_ = a.v.BindPFlag("server.port", f.Lookup("port"))
	_ = a.v.BindPFlag("server.max_simulations", f.Lookup("max-simulations"))
	_ = a.v.BindPFlag("server.request_timeout", f.Lookup("request-timeout"))
	_ = a.v.BindPFlag("server.dev_mode", f.Lookup("dev"))
	return cmd
}
