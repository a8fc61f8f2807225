package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/qsurf/internal/batch"
	"github.com/roach88/qsurf/internal/lattice"
	"github.com/roach88/qsurf/internal/store"
	"github.com/roach88/qsurf/internal/synth"
)

var (
	// ErrInvalidInput is returned when a command argument cannot be parsed,
	// for example a distance that is not an integer.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStore is returned when the history database cannot be opened,
	// read or written.
	ErrStore = errors.New("store error")
)

// Error codes reported in CLIError.Code.
const (
	CodeInvalidDistance  = "E101"
	CodeInvalidOperation = "E102"
	CodeInvalidInput     = "E103"
	CodeNotFound         = "E104"
	CodeInvalidJob       = "E105"
	CodeStore            = "E201"
	CodeInternal         = "E500"
)

// codeNames are the symbolic names shown next to codes in text output.
var codeNames = map[string]string{
	CodeInvalidDistance:  "INVALID_DISTANCE",
	CodeInvalidOperation: "INVALID_OPERATION",
	CodeInvalidInput:     "INVALID_INPUT",
	CodeNotFound:         "NOT_FOUND",
	CodeInvalidJob:       "INVALID_JOB",
	CodeStore:            "STORE_ERROR",
	CodeInternal:         "INTERNAL",
}

// ErrorCode maps an error to its CLI error code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, lattice.ErrInvalidDistance):
		return CodeInvalidDistance
	case errors.Is(err, synth.ErrInvalidOperation):
		return CodeInvalidOperation
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, store.ErrNotFound):
		return CodeNotFound
	case errors.Is(err, batch.ErrInvalidJob), errors.Is(err, batch.ErrUnsupportedFormat):
		return CodeInvalidJob
	case errors.Is(err, ErrStore), errors.Is(err, batch.ErrRecord):
		return CodeStore
	default:
		return CodeInternal
	}
}

// CodeName returns the symbolic name for code, or code itself.
func CodeName(code string) string {
	if name, ok := codeNames[code]; ok {
		return name
	}
	return code
}

// exitCodeFor maps an error code to a process exit code. Rejected
// synthesis requests are failures; everything about the invocation itself
// is a command error.
func exitCodeFor(code string) int {
	switch code {
	case CodeInvalidDistance, CodeInvalidOperation, CodeNotFound:
		return ExitFailure
	default:
		return ExitCommandError
	}
}

// parseDistance parses a code distance argument. Range checks are left
// to the lattice so the error carries the distance.
func parseDistance(arg string) (int, error) {
	d, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("%w: distance %q is not an integer", ErrInvalidInput, arg)
	}
	return d, nil
}

// fail reports err through f and returns the matching ExitError. Errors
// that were already reported are returned unchanged.
func fail(f *OutputFormatter, err error) error {
	if Reported(err) {
		return err
	}
	code := ErrorCode(err)
	if outErr := f.Error(code, err.Error(), nil); outErr != nil {
		return outErr
	}
	return &ExitError{Code: exitCodeFor(code), Message: CodeName(code), Err: err, reported: true}
}
