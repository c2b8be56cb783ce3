package services

import "errors"

// Scoring-pipeline failure taxonomy. Everything wraps one of these so the
// API layer can map each failed stage to a single terminal error.
var (
	// ErrUnsupportedFormat: CV file extension not recognized. Raised before
	// any model is invoked.
	ErrUnsupportedFormat = errors.New("unsupported cv file format")

	// ErrNoTextContent: recognized file type yielded no text (e.g. a
	// scanned-image PDF without a text layer).
	ErrNoTextContent = errors.New("no text content extracted from cv")

	// ErrExtraction: the semantic-extraction model call failed or returned
	// malformed data. The run aborts, no partial profile is persisted.
	ErrExtraction = errors.New("semantic extraction failed")

	// ErrAdjustment: the adjustment model call failed. The run aborts, no
	// matching is written.
	ErrAdjustment = errors.New("score adjustment failed")

	// ErrSerialization: the adjustment result could not be encoded for
	// persistence after the model call already succeeded.
	ErrSerialization = errors.New("failed to serialize score details")
)
