package dataprocessing

import (
	"fmt"
	"strings"
)

// ParseError indicates the uploaded payload could not be read as a workbook.
// It is fatal to the current interaction; the user must re-upload.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot read workbook: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError indicates one or more required columns are absent from the
// header row. Missing lists every absent column so the user can fix the
// workbook in one pass.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}
