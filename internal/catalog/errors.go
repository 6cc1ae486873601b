package catalog

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Catalog integrity errors. They are returned wrapped with context, so
// compare with errors.Is.
var (
	// ErrUnknownCategory indicates a category name outside roof, garden, ground.
	ErrUnknownCategory = constError("unknown category")

	// ErrDuplicateOption indicates two options share an id within a category.
	ErrDuplicateOption = constError("duplicate option id")

	// ErrMissingBaseline indicates a category has no "none" option.
	ErrMissingBaseline = constError("missing baseline option")

	// ErrBaselinePriced indicates the baseline option carries a price or a
	// non-baseline class.
	ErrBaselinePriced = constError("baseline option must be free")

	// ErrInvalidOption indicates a malformed option (empty id, bad number, bad class).
	ErrInvalidOption = constError("invalid option")

	// ErrUnsupportedSchema indicates a catalog file schema version this build cannot read.
	ErrUnsupportedSchema = constError("unsupported catalog schema version")
)
