// Package shared holds sentinel error values used across the project.
package shared

import "errors"

var (

	// path guard errors
	ErrorInvalidPath = errors.New("invalid path")

	// remote session errors
	ErrorTimeout           = errors.New("remote connect timeout")
	ErrorRemoteUnavailable = errors.New("remote unavailable")
	ErrorNotFound          = errors.New("not found")

	// profile table errors
	ErrorUnknownServer   = errors.New("unknown server")
	ErrorDuplicateServer = errors.New("duplicate server id")
)
