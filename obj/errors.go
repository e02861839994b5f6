package obj

import "errors"

var (
	ErrDegenerateShape = errors.New("obj: degenerate shape")
	ErrPortalMismatch  = errors.New("obj: portal endpoints differ in size")
	ErrInvalidPath     = errors.New("obj: invalid velocity path")
	ErrInvalidConfig   = errors.New("obj: invalid player config")
)
