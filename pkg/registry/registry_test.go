package registry

import (
	"testing"

	"github.com/arthur-debert/dotstrap/pkg/errors"
)

// TestItem is a simple type for testing
type TestItem struct {
	ID   int
	Name string
}

func TestNew(t *testing.T) {
	reg := New[TestItem]()

	if reg == nil {
		t.Fatal("New() returned nil")
	}

	if len(reg.Items()) != 0 {
		t.Errorf("New registry should be empty, got %d items", len(reg.Items()))
	}
}

func TestRegister(t *testing.T) {
	reg := New[TestItem]()

	t.Run("register valid item", func(t *testing.T) {
		if err := reg.Register("item1", TestItem{ID: 1}); err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}

		if n := len(reg.List()); n != 1 {
			t.Errorf("List() has %d names, want 1", n)
		}
	})

	t.Run("register with empty name", func(t *testing.T) {
		err := reg.Register("", TestItem{ID: 2})

		if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
			t.Errorf("Register() with empty name should return ErrInvalidInput, got %v", err)
		}
	})

	t.Run("register duplicate", func(t *testing.T) {
		err := reg.Register("item1", TestItem{ID: 3})

		if !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
			t.Errorf("Register() duplicate should return ErrAlreadyExists, got %v", err)
		}

		items := reg.Items()
		if len(items) != 1 || items[0].ID != 1 {
			t.Errorf("duplicate registration changed the registry: %+v", items)
		}
	})
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	reg := New[TestItem]()

	names := []string{"charlie", "alpha", "bravo"}
	for i, name := range names {
		_ = reg.Register(name, TestItem{ID: i})
	}

	list := reg.List()
	if len(list) != len(names) {
		t.Fatalf("List() returned %d items, want %d", len(list), len(names))
	}
	for i, name := range list {
		if name != names[i] {
			t.Errorf("List()[%d] = %s, want %s", i, name, names[i])
		}
	}

	items := reg.Items()
	for i, item := range items {
		if item.ID != i {
			t.Errorf("Items()[%d].ID = %d, want %d", i, item.ID, i)
		}
	}
}

func TestMustRegister(t *testing.T) {
	reg := New[TestItem]()
	MustRegister(reg, "item1", TestItem{ID: 1})

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustRegister() with duplicate name should panic")
		}
	}()
	MustRegister(reg, "item1", TestItem{ID: 2})
}
