// Package config loads the steam tool's ini configuration.
//
// Every key has a default, so a missing file or section yields a working
// configuration:
//
//	[tables]
//	saturation  =              ; path, empty uses the embedded table
//	superheated =
//
//	[solver]
//	tolerance      = 1e-10
//	xtol           = 1e-12
//	max_iterations = 100
//	scan_steps     = 64
//
//	[resolver]
//	strict         = false
//	tolerance      = 0.001
//	pressure_guess = 100
//
//	[log]
//	level = info
//
//	[server]
//	addr = :8080
package config
