package replay

import (
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Run("trace is registered by default", func(t *testing.T) {
		if !IsRegistered("trace") {
			t.Fatal("trace backend should self-register")
		}
		b, err := NewBackend("trace")
		if err != nil {
			t.Fatalf("NewBackend(trace) failed: %v", err)
		}
		if _, ok := b.(*Trace); !ok {
			t.Errorf("NewBackend(trace) = %T, want *Trace", b)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, err := NewBackend("nonexistent"); err == nil {
			t.Error("NewBackend() should fail for unregistered names")
		}
		if IsRegistered("nonexistent") {
			t.Error("IsRegistered() = true for unregistered name")
		}
	})

	t.Run("register and unregister", func(t *testing.T) {
		Register("test-backend", func() Backend { return NewTrace() })
		t.Cleanup(func() { Unregister("test-backend") })

		if !IsRegistered("test-backend") {
			t.Error("backend not registered")
		}
		found := false
		for _, name := range Backends() {
			if name == "test-backend" {
				found = true
			}
		}
		if !found {
			t.Errorf("Backends() = %v, missing test-backend", Backends())
		}
	})

	t.Run("factories create fresh instances", func(t *testing.T) {
		a := MustBackend("trace")
		b := MustBackend("trace")
		if a == b {
			t.Error("MustBackend() returned a shared instance")
		}
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		Register("dup-backend", func() Backend { return NewTrace() })
		t.Cleanup(func() { Unregister("dup-backend") })

		defer func() {
			if recover() == nil {
				t.Error("duplicate Register() should panic")
			}
		}()
		Register("dup-backend", func() Backend { return NewTrace() })
	})

	t.Run("nil factory panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Register() with nil factory should panic")
			}
		}()
		Register("nil-backend", nil)
	})

	t.Run("must backend panics on unknown", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("MustBackend() should panic for unregistered names")
			}
		}()
		MustBackend("nonexistent")
	})
}

func TestCount(t *testing.T) {
	before := Count()
	Register("count-backend", func() Backend { return NewTrace() })
	t.Cleanup(func() { Unregister("count-backend") })
	if Count() != before+1 {
		t.Errorf("Count() = %d, want %d", Count(), before+1)
	}
}
