package seeder

import "fmt"

// UnknownContainerError is returned when a table or collection has no
// columns, which is how every dialect reports a missing container.
type UnknownContainerError struct {
	Table string
}

func (e *UnknownContainerError) Error() string {
	return fmt.Sprintf("table %q not found or has no columns", e.Table)
}

type InsufficientGenerationError struct {
	Column string
	Want   int
	Got    int
}

func (e *InsufficientGenerationError) Error() string {
	return fmt.Sprintf("not enough values generated for column %q: wanted %d, got %d", e.Column, e.Want, e.Got)
}

type InvalidCountError struct {
	Count int
}

func (e *InvalidCountError) Error() string {
	return fmt.Sprintf("count must be between 1 and %d, got %d", MaxCount, e.Count)
}

type NoInsertableColumnsError struct {
	Table string
}

func (e *NoInsertableColumnsError) Error() string {
	return fmt.Sprintf("table %q has no columns to generate values for", e.Table)
}
