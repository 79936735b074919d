package usecase

import crerr "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
)

// Lineup failures surfaced to the user.
var (
	ErrMalformedImport    = crerr.New("lineup import rejected")
	ErrUnparseableImport  = crerr.New("lineup import is not valid JSON")
	ErrRasterization      = crerr.New("lineup image export failed")
	ErrSurfaceUnavailable = crerr.New("lineup surface is not renderable")
	ErrUnreadableImage    = crerr.New("background image could not be read")
)
