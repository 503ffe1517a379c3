package catalog

import (
	"errors"
	"fmt"
)

var ErrMissingNameColumn = errors.New("no column maps to the restaurant name")

// DataSourceError means the catalog as a whole could not be loaded. It is
// fatal to the request that triggered the load.
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("catalog source %q: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func sourceError(source string, err error) error {
	return &DataSourceError{Source: source, Err: err}
}
