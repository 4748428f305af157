package registry

import (
	"fmt"

	"github.com/arthur-debert/dotstrap/pkg/errors"
)

// Registry stores named items in registration order
type Registry[T any] interface {
	// Register appends an item to the registry
	Register(name string, item T) error

	// List returns all registered names in registration order
	List() []string

	// Items returns all registered items in registration order
	Items() []T
}

type entry[T any] struct {
	name string
	item T
}

// registry is the internal implementation of Registry.
// It is not safe for concurrent use.
type registry[T any] struct {
	entries []entry[T]
	index   map[string]int
}

// New creates a new Registry instance
func New[T any]() Registry[T] {
	return &registry[T]{
		index: make(map[string]int),
	}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}
	if _, exists := r.index[name]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", name)
	}

	r.index[name] = len(r.entries)
	r.entries = append(r.entries, entry[T]{name: name, item: item})
	return nil
}

func (r *registry[T]) List() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

func (r *registry[T]) Items() []T {
	items := make([]T, len(r.entries))
	for i, e := range r.entries {
		items[i] = e.item
	}
	return items
}

// MustRegister registers an item and panics if registration fails.
// Registration errors are programming errors in the startup wiring.
func MustRegister[T any](reg Registry[T], name string, item T) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}
