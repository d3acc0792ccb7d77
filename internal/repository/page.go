package repository

// PageRequest selects a bounded slice of an ordered result set.
// The zero value disables pagination: the full set is returned.
type PageRequest struct {
	Page    int
	PerPage int
}

// Enabled reports whether both page parameters were supplied.
func (p PageRequest) Enabled() bool {
	return p.Page >= 1 && p.PerPage >= 1
}

// Offset returns the number of records to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}
