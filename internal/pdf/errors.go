package pdf

import "errors"

// Failure classes reported by this package. Callers match them with errors.Is.
var (
	// ErrInvalidInput reports unreadable PDF or image bytes.
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutOfRange reports a page index outside [1, page count].
	ErrOutOfRange = errors.New("out of range")
	// ErrInvalidDocument reports degenerate page geometry or a broken result.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidArgument reports an argument no result can be defined for,
	// such as an empty preview.
	ErrInvalidArgument = errors.New("invalid argument")
)
