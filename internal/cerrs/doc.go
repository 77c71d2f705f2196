// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package cerrs defines constant error types using a custom Error string
// type. It groups the sentinels by the three error kinds the compiler
// can raise — bad-config, parse-error, and io-error — so callers can
// compare against a specific sentinel with errors.Is() while still
// wrapping in command, parameter, or path context via
// fmt.Errorf("...: %w", ...). The kind constants (ErrBadConfig,
// ErrParseError, ErrIOError) are sentinels of their own: a specific
// sentinel such as ErrUnknownCommand does not match its kind's
// constant under errors.Is().
package cerrs
