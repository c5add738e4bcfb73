package container

import (
	"runtime"
	"weak"
)

// registry maps group keys to the background context created for them. It
// holds only weak pointers: a context lives as long as something else holds
// it, and the registry never extends that.
//
// registry is not safe for concurrent use; the controller serializes access.
type registry struct {
	entries map[string]weak.Pointer[WorkContext]
	create  func(key string) *WorkContext

	// forget runs after a registered context has been reclaimed.
	forget func(key string, ptr weak.Pointer[WorkContext])
}

func newRegistry(create func(string) *WorkContext, forget func(string, weak.Pointer[WorkContext])) *registry {
	return &registry{
		entries: make(map[string]weak.Pointer[WorkContext]),
		create:  create,
		forget:  forget,
	}
}

type reclaimed struct {
	key string
	ptr weak.Pointer[WorkContext]
}

// contextFor returns the live context for key, creating and registering one
// if there is none. created reports whether a new context was made.
func (r *registry) contextFor(key string) (wc *WorkContext, created bool) {
	if ptr, ok := r.entries[key]; ok {
		if wc := ptr.Value(); wc != nil {
			return wc, false
		}
		delete(r.entries, key)
	}

	wc = r.create(key)
	ptr := weak.Make(wc)
	r.entries[key] = ptr

	if r.forget != nil {
		runtime.AddCleanup(wc, func(rc reclaimed) { r.forget(rc.key, rc.ptr) }, reclaimed{key: key, ptr: ptr})
	}

	return wc, true
}

// drop removes key only if it still refers to ptr; a newer context
// registered under the same key is left alone.
func (r *registry) drop(key string, ptr weak.Pointer[WorkContext]) bool {
	if cur, ok := r.entries[key]; ok && cur == ptr {
		delete(r.entries, key)
		return true
	}

	return false
}

func (r *registry) len() int {
	return len(r.entries)
}
