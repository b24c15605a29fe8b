package analysis

import (
	"errors"
	"fmt"
)

// Error kinds returned by the analyses. Match them with errors.Is.
var (
	// ErrEmptyResult means a filter left no rows for a statistic that
	// needs at least one.
	ErrEmptyResult = errors.New("no data")

	// ErrUndefinedStatistic means a ratio or correlation has a zero
	// denominator.
	ErrUndefinedStatistic = errors.New("statistic undefined")
)

func emptyResult(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrEmptyResult, fmt.Sprintf(format, args...))
}

func undefined(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUndefinedStatistic, fmt.Sprintf(format, args...))
}
