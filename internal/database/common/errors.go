package common

import "fmt"

type UnsupportedDialectError struct {
	Type string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("unsupported dialect: %q", e.Type)
}

// EmptyCollectionError is returned when a collection has no definition and
// no documents to sample.
type EmptyCollectionError struct {
	Collection string
}

func (e *EmptyCollectionError) Error() string {
	return fmt.Sprintf("collection %q is empty, cannot infer fields", e.Collection)
}

type UnsupportedActionError struct {
	Action string
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("unsupported action: %q (expected find, insertOne, updateOne or deleteOne)", e.Action)
}

type InvalidQueryError struct {
	Reason string
	Err    error
}

func (e *InvalidQueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid query: %s: %v", e.Reason, e.Err)
	}
	return "invalid query: " + e.Reason
}

func (e *InvalidQueryError) Unwrap() error {
	return e.Err
}
