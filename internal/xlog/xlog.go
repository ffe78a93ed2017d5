// Package xlog provides the package-level structured loggers used across
// evmcore. It mirrors the logger construction used by medusa/log, minus the
// multi-sink (file + console) wiring that belongs to the embedding CLI.
package xlog

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// Service identifies the evmcore subsystem emitting a log line, matching the
// "service" field convention used throughout the teacher's log package.
type Service string

const (
	ServiceExit      Service = "exit"
	ServiceTraceBus  Service = "tracebus"
	ServiceState     Service = "state"
	ServiceVMAdapter Service = "vmadapter"
)

// For returns a logger tagged with the given service name.
func For(service Service) zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Str("service", string(service)).Logger()
}

// Wrap attaches a stack trace to err at the point it crosses a package
// boundary, the way medusa/chain wraps medusa-geth errors before returning
// them to its caller.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(errors.WithStack(err), message)
}
