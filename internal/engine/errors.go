package engine

type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrUnknownUnit is returned by ParseUnit.
	ErrUnknownUnit = constError("unknown area unit")

	// ErrInvalidParams indicates a negative or non-finite rate in Params.
	ErrInvalidParams = constError("invalid estimation parameters")
)
