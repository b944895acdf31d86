package native

import (
	"errors"
	"sync"
	"testing"
)

func TestCloseRunsInReverseOrder(t *testing.T) {
	registry := NewRegistry()
	var order []string
	for _, label := range []string{"workdir", "script", "log"} {
		label := label
		registry.Register(label, func() error {
			order = append(order, label)
			return nil
		})
	}

	if err := registry.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	want := []string{"log", "script", "workdir"}
	if len(order) != len(want) {
		t.Fatalf("expected %d releases, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("release order = %v, want %v", order, want)
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	calls := 0
	registry.Register("once", func() error {
		calls++
		return nil
	})

	if err := registry.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := registry.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("cleanup ran %d times, want 1", calls)
	}
}

func TestCloseKeepsGoingAfterFailure(t *testing.T) {
	registry := NewRegistry()
	bang := errors.New("bang")
	var released []string
	registry.Register("first", func() error {
		released = append(released, "first")
		return nil
	})
	registry.Register("second", func() error {
		released = append(released, "second")
		return bang
	})
	registry.Register("third", func() error {
		released = append(released, "third")
		return nil
	})

	err := registry.Close()
	if !errors.Is(err, bang) {
		t.Fatalf("expected first failure returned, got %v", err)
	}
	if len(released) != 3 {
		t.Fatalf("expected all cleanups to run, got %v", released)
	}
}

func TestRegisterAfterCloseReleasesImmediately(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	released := false
	registry.Register("late", func() error {
		released = true
		return nil
	})

	if !released {
		t.Fatal("late registration should release immediately")
	}
	if registry.Outstanding() != 0 {
		t.Fatalf("outstanding = %d, want 0", registry.Outstanding())
	}
}

func TestCountsReturnToBaseline(t *testing.T) {
	registry := NewRegistry()
	for i := 0; i < 4; i++ {
		registry.Register("resource", func() error { return nil })
	}
	if registry.Outstanding() != 4 {
		t.Fatalf("outstanding = %d, want 4", registry.Outstanding())
	}

	if err := registry.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	registered, releasedCount := registry.Counts()
	if registered != 4 || releasedCount != 4 {
		t.Fatalf("counts = (%d, %d), want (4, 4)", registered, releasedCount)
	}
	if registry.Outstanding() != 0 {
		t.Fatalf("outstanding = %d, want 0", registry.Outstanding())
	}
}

func TestConcurrentRegisterAndClose(t *testing.T) {
	registry := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			registry.Register("resource", func() error { return nil })
		}()
	}
	wg.Wait()

	if err := registry.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if registry.Outstanding() != 0 {
		t.Fatalf("outstanding = %d, want 0", registry.Outstanding())
	}
}

func TestNilRegistryIsSafe(t *testing.T) {
	var registry *Registry
	registry.Register("noop", func() error { return nil })
	if err := registry.Close(); err != nil {
		t.Fatalf("nil Close failed: %v", err)
	}
	if registry.Outstanding() != 0 {
		t.Fatal("nil registry should report zero outstanding")
	}
}
