package schedule

import "github.com/cockroachdb/errors"

// ErrInvalidDeclaration is the mark carried by every error caused by a pass declaring a resource
// incorrectly
var ErrInvalidDeclaration = errors.New("invalid pass declaration")

// ErrUnknownResource is returned when a pass reads or writes a resource that was never created
var ErrUnknownResource = errors.New("resource was never created")
