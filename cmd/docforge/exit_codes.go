package main

import (
	"errors"
	"os"

	docforge "github.com/easylearning/docforge"
)

// Exit codes for the docforge CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, arguments, or input validation
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, docforge.ErrBrowserConnect) ||
		errors.Is(err, docforge.ErrPageCreate) ||
		errors.Is(err, docforge.ErrPageLoad) ||
		errors.Is(err, docforge.ErrRenderPNG) ||
		errors.Is(err, docforge.ErrRenderPDF) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, docforge.ErrFontUnavailable) {
		return ExitIO
	}

	// Usage/validation errors (exit 2)
	if errors.Is(err, ErrNoCommand) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrJobParse) ||
		errors.Is(err, docforge.ErrEmptyMarkup) ||
		errors.Is(err, docforge.ErrNoQuestions) ||
		errors.Is(err, docforge.ErrNoCards) ||
		errors.Is(err, docforge.ErrEmptyHTML) ||
		errors.Is(err, docforge.ErrEmptyDocument) ||
		errors.Is(err, docforge.ErrInvalidScale) ||
		errors.Is(err, docforge.ErrMissingStudent) ||
		errors.Is(err, docforge.ErrMissingEvent) ||
		errors.Is(err, docforge.ErrInvalidBatchRow) {
		return ExitUsage
	}

	return ExitGeneral
}
