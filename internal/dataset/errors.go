package dataset

import "fmt"

// InvalidInputError indicates a malformed dataset handed to a constructor.
type InvalidInputError struct{ Reason string }

func (e *InvalidInputError) Error() string { return fmt.Sprintf("invalid dataset: %s", e.Reason) }

// ShapeError indicates a column whose length disagrees with the frame's row count.
type ShapeError struct {
	Column    string
	Got, Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("column %q has %d rows, frame has %d", e.Column, e.Got, e.Want)
}

// DuplicateColumnError indicates two columns sharing a name.
type DuplicateColumnError struct{ Name string }

func (e *DuplicateColumnError) Error() string { return fmt.Sprintf("duplicate column %q", e.Name) }

// UnknownColumnError indicates a reference to a column the frame does not hold.
type UnknownColumnError struct{ Name string }

func (e *UnknownColumnError) Error() string { return fmt.Sprintf("unknown column %q", e.Name) }
