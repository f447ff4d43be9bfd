package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/fswatch/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No fswatch.yml found. Create one at your project root to define the watch set.\n")
		return err

	case errors.ErrCodeConfigValidation, errors.ErrCodeConfigInvalid:
		fmt.Fprintf(os.Stderr, "❌ Configuration problem: %v\n", err)
		return err

	case errors.ErrCodePathNotFound:
		if fwErr, ok := err.(*errors.FswatchError); ok {
			fmt.Fprintf(os.Stderr, "❌ Watch root '%v' does not exist\n", fwErr.Details["path"])
		}
		return err

	case errors.ErrCodeStateInvalid:
		if fwErr, ok := err.(*errors.FswatchError); ok {
			fmt.Fprintf(os.Stderr, "❌ State file '%v' is corrupt. Delete it to start from a clean slate.\n", fwErr.Details["path"])
		}
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if fwErr, ok := err.(*errors.FswatchError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", fwErr.ToJSON())
			}
		}
		return err
	}
}
