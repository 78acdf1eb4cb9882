package greenops

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, compared with errors.Is.
var (
	// ErrInvalidUnit indicates an unrecognised carbon unit.
	ErrInvalidUnit = constError("invalid carbon unit")

	// ErrCalculationOverflow indicates a NaN, infinite or overflowing value.
	ErrCalculationOverflow = constError("calculation overflow")
)
