package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, compare with errors.Is.
var (
	// ErrInvalidUnit indicates an unrecognized mass unit.
	ErrInvalidUnit = constError("invalid carbon unit")

	// ErrNegativeValue indicates a negative abatement figure.
	ErrNegativeValue = constError("negative carbon value")

	// ErrCalculationOverflow indicates a NaN, infinite or overflowing value.
	ErrCalculationOverflow = constError("calculation overflow")
)
