// Package exitcode defines exit codes for the CLI.
package exitcode

import "github.com/idilsaglam/todoclient/internal/remote"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad input, not found, rejected payload).
	UserError = 1

	// Usage indicates bad flags or arguments, or an invalid configuration.
	Usage = 2

	// BackendError indicates a backend, network or timeout error.
	BackendError = 3
)

// FromError maps an operation error to an exit code.
func FromError(err error) int {
	if err == nil {
		return Success
	}
	switch remote.KindOf(err) {
	case remote.NotFound, remote.Validation:
		return UserError
	default:
		return BackendError
	}
}
