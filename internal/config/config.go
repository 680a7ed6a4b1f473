package config

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"github.com/roach88/steam/internal/solver"
	"github.com/roach88/steam/internal/steam"
	"github.com/roach88/steam/internal/tables"
)

// DefaultAddr is the websocket server listen address.
const DefaultAddr = ":8080"

// Config is the parsed configuration.
type Config struct {
	Tables   TablesConfig
	Solver   SolverConfig
	Resolver ResolverConfig
	Log      LogConfig
	Server   ServerConfig
}

type TablesConfig struct {
	Saturation  string
	Superheated string
}

type SolverConfig struct {
	Tolerance     float64
	XTol          float64
	MaxIterations int
	ScanSteps     int
}

type ResolverConfig struct {
	Strict        bool
	Tolerance     float64
	PressureGuess float64
}

type LogConfig struct {
	Level string
}

type ServerConfig struct {
	Addr string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return fromFile(ini.Empty())
}

// Load reads path. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	file, err := ini.LooseLoad(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg := fromFile(file)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads configuration from raw ini data.
func Parse(data []byte) (*Config, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg := fromFile(file)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromFile(file *ini.File) *Config {
	def := solver.DefaultOptions()
	return &Config{
		Tables: TablesConfig{
			Saturation:  file.Section("tables").Key("saturation").String(),
			Superheated: file.Section("tables").Key("superheated").String(),
		},
		Solver: SolverConfig{
			Tolerance:     file.Section("solver").Key("tolerance").MustFloat64(def.Tol),
			XTol:          file.Section("solver").Key("xtol").MustFloat64(def.XTol),
			MaxIterations: file.Section("solver").Key("max_iterations").MustInt(def.MaxIter),
			ScanSteps:     file.Section("solver").Key("scan_steps").MustInt(def.ScanSteps),
		},
		Resolver: ResolverConfig{
			Strict:        file.Section("resolver").Key("strict").MustBool(false),
			Tolerance:     file.Section("resolver").Key("tolerance").MustFloat64(steam.DefaultTolerance),
			PressureGuess: file.Section("resolver").Key("pressure_guess").MustFloat64(steam.DefaultPressureGuess),
		},
		Log: LogConfig{
			Level: file.Section("log").Key("level").MustString("info"),
		},
		Server: ServerConfig{
			Addr: file.Section("server").Key("addr").MustString(DefaultAddr),
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if (c.Tables.Saturation == "") != (c.Tables.Superheated == "") {
		errs = append(errs, errors.New("tables: saturation and superheated must be set together"))
	}
	if c.Solver.Tolerance <= 0 || c.Solver.XTol <= 0 {
		errs = append(errs, errors.New("solver: tolerances must be positive"))
	}
	if c.Solver.MaxIterations < 1 || c.Solver.ScanSteps < 1 {
		errs = append(errs, errors.New("solver: max_iterations and scan_steps must be at least 1"))
	}
	if c.Resolver.Tolerance <= 0 {
		errs = append(errs, errors.New("resolver: tolerance must be positive"))
	}
	if c.Resolver.PressureGuess <= 0 {
		errs = append(errs, errors.New("resolver: pressure_guess must be positive"))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	return errors.Join(errs...)
}

// SolverOptions converts the [solver] section. Search bounds are left
// open; the resolver takes them from the tables.
func (c *Config) SolverOptions() solver.Options {
	o := solver.DefaultOptions()
	o.Tol = c.Solver.Tolerance
	o.XTol = c.Solver.XTol
	o.MaxIter = c.Solver.MaxIterations
	o.ScanSteps = c.Solver.ScanSteps
	return o
}

// ResolverOptions returns the resolver options for this configuration.
func (c *Config) ResolverOptions(log logrus.FieldLogger) []steam.Option {
	return []steam.Option{
		steam.WithSolverOptions(c.SolverOptions()),
		steam.WithStrict(c.Resolver.Strict),
		steam.WithTolerance(c.Resolver.Tolerance),
		steam.WithPressureGuess(c.Resolver.PressureGuess),
		steam.WithLogger(log),
	}
}

// LoadTables returns the configured tables, or the embedded ones when no
// paths are set.
func (c *Config) LoadTables() (*tables.Tables, error) {
	if c.Tables.Saturation == "" {
		return tables.Default(), nil
	}
	return tables.LoadFiles(c.Tables.Saturation, c.Tables.Superheated)
}

// Level returns the configured log level, Info when unparsable.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
