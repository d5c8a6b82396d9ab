package graph

import (
	"github.com/dolthub/swiss"
)

// Registry hands out dense integer handles for names. Handles are assigned in the order names are
// first interned, starting at 0, so they can index arenas directly.
type Registry[ID ~int32] struct {
	ids   *swiss.Map[string, ID]
	names []string
}

func NewRegistry[ID ~int32]() *Registry[ID] {
	return &Registry[ID]{
		ids: swiss.NewMap[string, ID](42),
	}
}

// Intern returns the handle for name, assigning the next handle if the name has not been seen.
// The boolean return value is true if the handle was newly assigned.
func (r *Registry[ID]) Intern(name string) (ID, bool) {
	id, ok := r.ids.Get(name)
	if ok {
		return id, false
	}

	id = ID(len(r.names))
	r.names = append(r.names, name)
	r.ids.Put(name, id)
	return id, true
}

// Lookup returns the handle for name, if it has been interned
func (r *Registry[ID]) Lookup(name string) (ID, bool) {
	return r.ids.Get(name)
}

// Name returns the display name of a handle, or the empty string if the handle was never assigned
func (r *Registry[ID]) Name(id ID) string {
	if id < 0 || int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}

func (r *Registry[ID]) Len() int {
	return len(r.names)
}
