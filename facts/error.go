package facts

import "github.com/ardnew/extlookup/lookup"

// Predefined errors (sentinel values).
var (
	ErrFactsFile = lookup.NewError("invalid facts file")
	ErrFactExpr  = lookup.NewError("fact expression failed")
	ErrFactCycle = lookup.NewError("fact refers to itself")
)
