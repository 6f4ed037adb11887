package payment

import "errors"

// Sentinel errors for the payment lifecycle. Handlers map these onto HTTP
// status codes; everything else surfaces as a 500.
var (
	// ErrNotFound is returned when no record (or no evidence) exists for
	// the requested identifier.
	ErrNotFound = errors.New("payment record not found")

	// ErrInvalidID is returned for structurally invalid identifiers.
	ErrInvalidID = errors.New("invalid payment record id")

	// ErrUnsupportedFileType is returned when an evidence upload carries an
	// extension outside the allow-list.
	ErrUnsupportedFileType = errors.New("unsupported evidence file type")

	// ErrEvidenceConflict is returned when a record is already completed
	// with evidence attached; re-uploads must not silently overwrite it.
	ErrEvidenceConflict = errors.New("evidence already attached to completed payment")
)
