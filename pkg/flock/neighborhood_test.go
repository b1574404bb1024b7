package flock

import (
	"testing"

	"github.com/flockgrid/go-grid-flocking/pkg/geometry"
)

// indexGrid builds a grid whose cell (i, j) carries position {i, j, 0} and
// velocity {j, i, 1}, making extracted values easy to identify.
func indexGrid(t *testing.T, rows, cols int) *State {
	t.Helper()
	s, err := New(rows, cols, newTestRand())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			s.SetCell(i, j,
				geometry.Vec3{X: float64(i), Y: float64(j)},
				geometry.Vec3{X: float64(j), Y: float64(i), Z: 1})
		}
	}
	return s
}

func TestExtractor_InteriorWindow(t *testing.T) {
	s := indexGrid(t, 5, 5)
	ex := NewExtractor(3)

	n := ex.Extract(s, 2, 2)
	if len(n.Pos) != 9 || len(n.Vel) != 9 {
		t.Fatalf("window entries = %d/%d; want 9/9", len(n.Pos), len(n.Vel))
	}

	// Row-major walk of rows 1..3, cols 1..3; the center sits at entry 4.
	if n.Pos[4] != s.PositionAt(2, 2) {
		t.Errorf("center entry = %v; want %v", n.Pos[4], s.PositionAt(2, 2))
	}
	if n.Pos[0] != s.PositionAt(1, 1) {
		t.Errorf("first entry = %v; want top-left neighbor %v", n.Pos[0], s.PositionAt(1, 1))
	}
	if n.Pos[8] != s.PositionAt(3, 3) {
		t.Errorf("last entry = %v; want bottom-right neighbor %v", n.Pos[8], s.PositionAt(3, 3))
	}
	if n.Vel[4] != s.VelocityAt(2, 2) {
		t.Errorf("center velocity = %v; want %v", n.Vel[4], s.VelocityAt(2, 2))
	}
}

func TestExtractor_EdgeClampReplication(t *testing.T) {
	s := indexGrid(t, 5, 5)
	ex := NewExtractor(3)

	t.Run("top-left corner", func(t *testing.T) {
		n := ex.Extract(s, 0, 0)
		// Out-of-grid rows and columns replicate the nearest edge cell, so
		// the first entry collapses onto (0,0) itself.
		if n.Pos[0] != s.PositionAt(0, 0) {
			t.Errorf("padded corner entry = %v; want clamp to (0,0) = %v", n.Pos[0], s.PositionAt(0, 0))
		}
		if n.Pos[1] != s.PositionAt(0, 0) {
			t.Errorf("padded top entry = %v; want clamp to (0,0) = %v", n.Pos[1], s.PositionAt(0, 0))
		}
		if n.Pos[8] != s.PositionAt(1, 1) {
			t.Errorf("in-grid entry = %v; want (1,1) = %v", n.Pos[8], s.PositionAt(1, 1))
		}
	})

	t.Run("bottom edge", func(t *testing.T) {
		n := ex.Extract(s, 4, 2)
		// The row below the grid replicates row 4.
		if n.Pos[6] != s.PositionAt(4, 1) || n.Pos[7] != s.PositionAt(4, 2) || n.Pos[8] != s.PositionAt(4, 3) {
			t.Errorf("bottom padding row = %v %v %v; want row 4 replicated", n.Pos[6], n.Pos[7], n.Pos[8])
		}
	})

	t.Run("policy matches for velocities", func(t *testing.T) {
		n := ex.Extract(s, 0, 0)
		if n.Vel[0] != s.VelocityAt(0, 0) {
			t.Errorf("velocity padding = %v; want clamp to (0,0) = %v", n.Vel[0], s.VelocityAt(0, 0))
		}
	})
}

func TestExtractor_EvenWindow(t *testing.T) {
	s := indexGrid(t, 5, 5)
	ex := NewExtractor(2)

	// half = 1, so a 2x2 window at (2,2) spans rows 1..2 and cols 1..2.
	n := ex.Extract(s, 2, 2)
	if len(n.Pos) != 4 {
		t.Fatalf("window entries = %d; want 4", len(n.Pos))
	}
	want := []geometry.Vec3{
		s.PositionAt(1, 1), s.PositionAt(1, 2),
		s.PositionAt(2, 1), s.PositionAt(2, 2),
	}
	for k, w := range want {
		if n.Pos[k] != w {
			t.Errorf("entry %d = %v; want %v", k, n.Pos[k], w)
		}
	}
}

func TestExtractor_ReusesBuffers(t *testing.T) {
	s := indexGrid(t, 5, 5)
	ex := NewExtractor(3)

	first := ex.Extract(s, 1, 1)
	firstAddr := &first.Pos[0]
	second := ex.Extract(s, 3, 3)
	if &second.Pos[0] != firstAddr {
		t.Error("Extract allocated a fresh buffer; expected scratch reuse")
	}
	if second.Pos[4] != s.PositionAt(3, 3) {
		t.Error("reused buffer does not hold the latest extraction")
	}
}

func BenchmarkExtractor(b *testing.B) {
	s, _ := New(50, 100, newTestRand())
	ex := NewExtractor(3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ex.Extract(s, 25, 50)
	}
}
