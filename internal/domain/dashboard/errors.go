package dashboard

import "errors"

var (
	ErrMissingRange  = errors.New("from and to are required")
	ErrRangeTooLarge = errors.New("range must not exceed 366 days")
	ErrInvalidPeriod = errors.New("invalid year or month")
)
