package storage

import "github.com/cockroachdb/errors"

var (
	// ErrUndeclaredResource is returned when a resource name was never declared by any pass
	ErrUndeclaredResource = errors.New("resource was never declared")
	// ErrNotScheduled is returned when a pass asks for a resource, or a view of a resource, that it did
	// not declare
	ErrNotScheduled = errors.New("resource is not scheduled for this use in this pass")
	// ErrUnknownPass is returned when a pass name or id is not part of the graph
	ErrUnknownPass = errors.New("pass is not part of the graph")
	// ErrNotAllocated is returned when frame execution methods are used before AllocateScheduledResources
	// succeeded
	ErrNotAllocated = errors.New("scheduled resources have not been allocated")
	// ErrAlreadyAllocated is returned when AllocateScheduledResources is called more than once
	ErrAlreadyAllocated = errors.New("scheduled resources have already been allocated")
)
