package api

import (
	"fmt"
	"strings"
)

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RejectedError is a response with a non-success status. Detail is the server-provided
// explanation, empty when the body carried none.
type RejectedError struct {
	Op     string
	Status int
	Detail string
}

func (e *RejectedError) Error() string {
	if strings.TrimSpace(e.Detail) == "" {
		return fmt.Sprintf("%s: rejected (HTTP %d)", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: rejected (HTTP %d): %s", e.Op, e.Status, e.Detail)
}

// MalformedError is a success response whose body could not be decoded into the expected shape.
type MalformedError struct {
	Op  string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }
