package securebuf

import "testing"

func TestReserveWithinBudget(t *testing.T) {
	m := NewManager(1000)
	if err := m.Reserve("op1", 400); err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if err := m.Reserve("op2", 500); err != nil {
		t.Fatalf("Reserve op2: %v", err)
	}
	usage := m.MemoryUsage()
	if usage.Current != 900 {
		t.Errorf("Current = %d; want 900", usage.Current)
	}
	if usage.Operations != 2 {
		t.Errorf("Operations = %d; want 2", usage.Operations)
	}
}

func TestReserveExceedsBudgetFailsNewest(t *testing.T) {
	m := NewManager(1000)
	if err := m.Reserve("op1", 900); err != nil {
		t.Fatalf("Reserve op1: %v", err)
	}
	if err := m.Reserve("op2", 200); err == nil {
		t.Fatal("expected budget exceeded error for op2")
	}
	usage := m.MemoryUsage()
	if usage.Current != 900 {
		t.Errorf("op1's reservation should be untouched; Current = %d", usage.Current)
	}
}

func TestReleaseReturnsMemory(t *testing.T) {
	m := NewManager(1000)
	if err := m.Reserve("op1", 900); err != nil {
		t.Fatal(err)
	}
	before := m.MemoryUsage().Current
	m.Release("op1")
	after := m.MemoryUsage().Current
	if before != 900 || after != 0 {
		t.Errorf("before=%d after=%d; want 900, 0", before, after)
	}
	// Memory usage returns to pre-operation value (spec §8 universal invariant).
	if err := m.Reserve("op2", 900); err != nil {
		t.Fatalf("Reserve after release: %v", err)
	}
}

func TestHandleReleaseZeroizes(t *testing.T) {
	m := NewManager(0)
	h := m.NewHandle(4)
	copy(h.Bytes(), []byte{1, 2, 3, 4})
	backing := h.Bytes()
	h.Release()
	for i, b := range backing {
		if b != 0 {
			t.Errorf("byte %d = %d after release; want 0", i, b)
		}
	}
	if h.Bytes() != nil {
		t.Error("Bytes() should be nil after release")
	}
	if h.Len() != 0 {
		t.Error("Len() should be 0 after release")
	}
}

func TestCleanupAllZeroizesTrackedBuffers(t *testing.T) {
	m := NewManager(0)
	h1 := m.NewHandle(4)
	h2 := m.NewHandle(4)
	copy(h1.Bytes(), []byte{9, 9, 9, 9})
	copy(h2.Bytes(), []byte{9, 9, 9, 9})
	b1, b2 := h1.Bytes(), h2.Bytes()

	if err := m.Reserve("op1", 100); err != nil {
		t.Fatal(err)
	}

	m.CleanupAll()

	for _, b := range [][]byte{b1, b2} {
		for i, v := range b {
			if v != 0 {
				t.Errorf("byte %d = %d after CleanupAll; want 0", i, v)
			}
		}
	}

	if h1.Bytes() != nil || h2.Bytes() != nil {
		t.Error("CleanupAll should release all tracked handles")
	}
	if m.MemoryUsage().Current != 0 {
		t.Error("CleanupAll should drop all reservations")
	}
}
