package conventional

// EmptyMessageError is returned when a commit message is empty after the
// preamble filter has run.
type EmptyMessageError struct{}

func (e *EmptyMessageError) Error() string {
	return "semrel: commit message is empty after preamble filtering"
}

// InvalidHeaderError is returned by ParseStrict when the header does not
// match the grammar and the caller has not opted into the NonCompliant
// fallback.
type InvalidHeaderError struct {
	Detail string
}

func (e *InvalidHeaderError) Error() string {
	return "semrel: invalid commit header: " + e.Detail
}

// ScopeIsCategoryError is returned by ParseStrict when a scope token
// textually equals a standard category name; Parse falls back to
// NonCompliant for the same condition instead.
type ScopeIsCategoryError struct {
	Text string
}

func (e *ScopeIsCategoryError) Error() string {
	return "semrel: scope " + e.Text + " equals a standard category name"
}

// UnknownCategoryError is returned by ParseCategoryStrict when a category
// token does not match any standard category name.
type UnknownCategoryError struct {
	Text string
}

func (e *UnknownCategoryError) Error() string {
	return "semrel: unknown category: " + e.Text
}
