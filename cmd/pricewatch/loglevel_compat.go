//go:build !go1.22

package main

import "log/slog"

// slog.SetLogLoggerLevel does not exist before Go 1.22.
func setLogLoggerLevel(_ slog.Level) {}
