package snippets

import "errors"

var (
	// ErrInvalidRange indicates contact indexes outside the log
	ErrInvalidRange = errors.New("contact range out of bounds")

	// ErrSpanTooLong indicates the requested audio span exceeds the configured maximum
	ErrSpanTooLong = errors.New("requested span exceeds maximum export length")

	// ErrExtractionFailed indicates the audio pipeline could not produce the snippet
	ErrExtractionFailed = errors.New("snippet extraction failed")

	// ErrExportNotFound indicates no export record matches the given UUID
	ErrExportNotFound = errors.New("export not found")

	// ErrExportNotReady indicates the export bundle is not available for download
	ErrExportNotReady = errors.New("export is not ready for download")
)
