package domain

import "errors"

// Sentinel errors for catalog operations
var (
	// ErrRemoteUnavailable indicates the remote catalog could not be reached
	ErrRemoteUnavailable = errors.New("remote catalog is unreachable")

	// ErrRemoteError indicates the remote catalog accepted the request but
	// failed server-side
	ErrRemoteError = errors.New("remote catalog request failed")

	// ErrPermissionDenied indicates the caller lacks the privileged role
	// required for a write
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound indicates a single-record update or delete targeted a
	// missing id
	ErrNotFound = errors.New("record not found")

	// ErrUnknownCollection indicates a collection name outside the four
	// catalog collections
	ErrUnknownCollection = errors.New("unknown collection")
)
