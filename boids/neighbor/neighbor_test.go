package neighbor

import (
	"testing"
)

func TestIncrementalPopulation(t *testing.T) {
	l := New(10)

	l.Begin(0)
	l.Add(0, 1)
	l.Add(0, 2)
	l.Add(0, 3)

	l.Begin(1)
	l.Add(1, 0)
	l.Add(1, 2)

	if got := l.Count(0); got != 3 {
		t.Fatalf("Count(0) = %d, want 3", got)
	}
	if got := l.Count(1); got != 2 {
		t.Fatalf("Count(1) = %d, want 2", got)
	}

	want0 := []uint32{1, 2, 3}
	for i, n := range l.Of(0) {
		if n != want0[i] {
			t.Fatalf("Of(0) = %v, want %v", l.Of(0), want0)
		}
	}
	want1 := []uint32{0, 2}
	for i, n := range l.Of(1) {
		if n != want1[i] {
			t.Fatalf("Of(1) = %v, want %v", l.Of(1), want1)
		}
	}
	if l.Total() != 5 {
		t.Fatalf("Total() = %d, want 5", l.Total())
	}
}

func TestClearEmptiesFlatSequence(t *testing.T) {
	l := New(4)
	l.Begin(0)
	l.Add(0, 1)
	l.Add(0, 2)

	l.Clear()
	if l.Total() != 0 {
		t.Fatalf("Total() after Clear = %d, want 0", l.Total())
	}

	// Reuse after Clear starts fresh runs.
	l.Begin(0)
	l.Add(0, 3)
	if got := l.Of(0); len(got) != 1 || got[0] != 3 {
		t.Fatalf("Of(0) after reuse = %v, want [3]", got)
	}
}

func TestGrowthBeyondReservedHint(t *testing.T) {
	l := New(1) // reserves 8 flat entries

	l.Begin(0)
	for j := uint32(0); j < 20; j++ {
		l.Add(0, j)
	}

	if got := l.Count(0); got != 20 {
		t.Fatalf("Count(0) = %d, want 20", got)
	}
	for i, n := range l.Of(0) {
		if n != uint32(i) {
			t.Fatalf("Of(0)[%d] = %d, want %d", i, n, i)
		}
	}
}

func TestBulkPopulationMatchesIncremental(t *testing.T) {
	inc := New(3)
	inc.Begin(0)
	inc.Add(0, 1)
	inc.Add(0, 2)
	inc.Begin(1)
	inc.Add(1, 0)
	inc.Begin(2)
	inc.Add(2, 0)
	inc.Add(2, 1)

	bulk := New(3)
	flat := bulk.Flat()
	copy(flat, []uint32{1, 2, 0, 0, 1})
	copy(bulk.Offsets(), []uint32{0, 2, 3})
	copy(bulk.Counts(), []uint32{2, 1, 2})
	if err := bulk.Commit(5); err != nil {
		t.Fatalf("Commit(5) failed: %v", err)
	}

	for u := 0; u < 3; u++ {
		a, b := inc.Of(u), bulk.Of(u)
		if len(a) != len(b) {
			t.Fatalf("unit %d: incremental %v vs bulk %v", u, a, b)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("unit %d: incremental %v vs bulk %v", u, a, b)
			}
		}
	}
}

func TestCommitRejectsOversizedTotal(t *testing.T) {
	l := New(2) // reserves 16 flat entries

	if err := l.Commit(16); err != nil {
		t.Fatalf("Commit at reserved capacity failed: %v", err)
	}
	if err := l.Commit(17); err == nil {
		t.Fatal("Commit beyond reserved capacity succeeded, want error")
	}
	if err := l.Commit(-1); err == nil {
		t.Fatal("Commit with negative total succeeded, want error")
	}
}
