package docforge

import "errors"

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrEmptyMarkup     = errors.New("markup content cannot be empty")
	ErrNoQuestions     = errors.New("question list cannot be empty")
	ErrNoCards         = errors.New("flashcard list cannot be empty")
	ErrEmptyHTML       = errors.New("HTML content cannot be empty")
	ErrEmptyDocument   = errors.New("document bytes cannot be empty")
	ErrInvalidScale    = errors.New("invalid raster scale")
	ErrMissingStudent  = errors.New("certificate student name is required")
	ErrMissingEvent    = errors.New("certificate event name is required")
	ErrInvalidBatchRow = errors.New("invalid certificate batch row")

	// Whole-operation fatal errors.
	ErrArchiveWrite  = errors.New("archive serialization failed")
	ErrDocumentOpen  = errors.New("failed to open source document")
	ErrWorkbookWrite = errors.New("workbook serialization failed")

	// Browser rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrRenderPNG      = errors.New("PNG capture failed")
	ErrRenderPDF      = errors.New("PDF generation failed")

	// Fallback raster errors.
	ErrFontUnavailable = errors.New("no usable font for fallback rendering")
)
