package cli

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/wghou/BeeVeeH/skeleton"
)

// Exit statuses of the bvhkin command.
const (
	ExitGeneral   = 1
	ExitParse     = 2
	ExitUnderflow = 3
	ExitMismatch  = 4
	ExitStale     = 5
)

// ExitCode maps err to the process exit status by the kind of skeleton error it wraps.
func ExitCode(err error) int {
	var (
		parseErr     *skeleton.ParseError
		underflowErr *skeleton.UnderflowError
		mismatchErr  *skeleton.MismatchError
		staleErr     *skeleton.StaleStateError
	)
	switch {
	case err == nil:
		return 0
	case errors.As(err, &parseErr):
		return ExitParse
	case errors.As(err, &underflowErr):
		return ExitUnderflow
	case errors.As(err, &mismatchErr):
		return ExitMismatch
	case errors.As(err, &staleErr):
		return ExitStale
	default:
		return ExitGeneral
	}
}

// ExitError turns an error returned by the app into a cli.ExitCoder carrying ExitCode.
func ExitError(err error) cli.ExitCoder {
	return cli.Exit(fmt.Sprintf("Error: %v", err), ExitCode(err))
}
