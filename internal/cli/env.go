package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/roach88/steam/internal/config"
	"github.com/roach88/steam/internal/steam"
	"github.com/roach88/steam/internal/store"
	"github.com/roach88/steam/internal/tables"
)

// env is what a command needs to resolve states: configuration, a logger
// writing to the command's stderr and a resolver over the selected tables.
type env struct {
	cfg      *config.Config
	log      *logrus.Logger
	resolver *steam.Resolver
	out      *OutputFormatter
}

// newEnv loads configuration and tables. Errors are returned as
// ExitCommandError and have already been reported through out.
func newEnv(ctx context.Context, opts *RootOptions, cmd *cobra.Command, extra ...steam.Option) (*env, error) {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeInvalidInput, err)
	}
	log := newLogger(opts, cfg, out)

	t, source, err := loadTables(ctx, opts, cfg)
	if err != nil {
		code := ErrCodeTables
		if opts.Dataset != "" {
			code = ErrCodeStore
		}
		return nil, out.Fail(ExitCommandError, code, err)
	}
	out.Tables = source
	log.WithFields(logrus.Fields{
		"tables":     source,
		"saturation": len(t.Saturation()),
		"superheat":  len(t.Superheated()),
	}).Debug("tables loaded")

	resolverOpts := append(cfg.ResolverOptions(log), extra...)
	r, err := steam.NewResolver(t, resolverOpts...)
	if err != nil {
		return nil, out.Fail(ExitCommandError, ErrCodeTables, err)
	}
	return &env{cfg: cfg, log: log, resolver: r, out: out}, nil
}

// newLogger returns a logger on the command's stderr. --verbose forces
// debug; otherwise the configured level applies.
func newLogger(opts *RootOptions, cfg *config.Config, out *OutputFormatter) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out.GetErrWriter())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(cfg.Level())
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// loadTables picks the table source: a stored dataset, the configured
// files, then the built-in tables. The second result names the source.
func loadTables(ctx context.Context, opts *RootOptions, cfg *config.Config) (*tables.Tables, string, error) {
	if opts.Dataset != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return nil, "", err
		}
		defer st.Close()

		ds, err := st.GetDataset(ctx, opts.Dataset)
		if err != nil {
			return nil, "", err
		}
		t, err := st.LoadTables(ctx, ds.ID)
		if err != nil {
			return nil, "", err
		}
		return t, "dataset:" + ds.ID, nil
	}

	t, err := cfg.LoadTables()
	if err != nil {
		return nil, "", err
	}
	if cfg.Tables.Saturation == "" {
		return t, "builtin", nil
	}
	return t, fmt.Sprintf("files:%s,%s", cfg.Tables.Saturation, cfg.Tables.Superheated), nil
}
