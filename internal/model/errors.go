package model

import "errors"

// Sentinel errors shared by services and mapped to HTTP statuses in the
// handlers. Services wrap these with fmt.Errorf("...: %w", ...) so callers
// can test with errors.Is.
var (
	// ErrUnauthenticated means there is no valid session at all.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnauthorized means the session is valid but the actor's roles do
	// not grant the capability the operation requires.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidTransition means the requested status change is not an edge
	// of the lifecycle graph for the request's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotFound means the referenced entity does not resolve.
	ErrNotFound = errors.New("resource not found")
	// ErrRemoteFailure means a call to the data store or the document
	// service failed; the operation may be retried manually.
	ErrRemoteFailure = errors.New("remote call failed")
	// ErrConflict means a conditional update matched zero rows because
	// another actor already transitioned the resource.
	ErrConflict = errors.New("conflicting concurrent update")
	// ErrInvalidInput means request payload validation failed.
	ErrInvalidInput = errors.New("invalid input")
)
