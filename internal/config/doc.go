// Package config provides configuration management for the CO₂ & energy
// panel pipeline.
//
// Configuration is layered: compile-time defaults, then an optional YAML
// file, then environment variables with the CO2 prefix. The environment
// always wins:
//
//	cfg, err := config.Load("co2cli.yaml")
//	paths := config.NewPaths(cfg.Paths)
//
// Paths centralizes every file location the pipeline touches; the panel CSV
// it names is the durable interface between the offline dataset builder and
// the in-process analytics engines.
package config
