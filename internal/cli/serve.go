package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/steam/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolver over a websocket",
		Long: `Start a websocket server on /ws. Clients send resolve and rankine
requests as JSON messages and receive resolved, rankine or error replies.

The listen address comes from --addr, then [server] addr in the config
file, then :8080. The server stops on SIGINT or SIGTERM.

Example:
  steam serve --addr :9000 --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := newEnv(ctx, opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	addr := e.cfg.Server.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.NewServer(addr, e.resolver, e.log).ListenAndServe(ctx); err != nil {
		return WrapExitError(ExitCommandError, "websocket server failed", err)
	}
	e.log.Info("websocket server stopped")
	return nil
}
