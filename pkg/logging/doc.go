// Package logging provides structured logging configuration for contractd.
//
// This package wraps log/slog. Library packages accept a *slog.Logger and
// fall back to Nop when none is given; only the CLI builds a real one.
//
// # Usage
//
//	level, err := logging.ParseLevel(cfg.LogLevel)
//	if err != nil {
//	    return err
//	}
//	logger := logging.New(logging.Config{Level: level, Format: logging.FormatText})
//	logger.Info("contract loaded", "name", c.Name())
//
// Config.Mirror additionally writes every record as JSON, which the CLI uses
// for --log-file.
package logging
