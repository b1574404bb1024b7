package flock

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/flockgrid/go-grid-flocking/pkg/geometry"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestNew_InitialRanges(t *testing.T) {
	s, err := New(20, 30, newTestRand())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if s.Rows() != 20 || s.Cols() != 30 {
		t.Fatalf("dimensions = %dx%d; want 20x30", s.Rows(), s.Cols())
	}

	for i := 0; i < s.Rows(); i++ {
		for j := 0; j < s.Cols(); j++ {
			p := s.PositionAt(i, j)
			for _, c := range []float64{p.X, p.Y, p.Z} {
				if c < 0 || c >= 1 {
					t.Fatalf("position component %v at (%d,%d) outside [0,1)", c, i, j)
				}
			}
			v := s.VelocityAt(i, j)
			for _, c := range []float64{v.X, v.Y, v.Z} {
				if c < -0.005 || c >= 0.005 {
					t.Fatalf("velocity component %v at (%d,%d) outside [-0.005, 0.005)", c, i, j)
				}
			}
		}
	}
}

func TestNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 10},
		{"negative rows", -3, 10},
		{"zero cols", 10, 0},
		{"negative cols", 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rows, tt.cols, newTestRand())
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("New(%d, %d) error = %v; want *ConfigError", tt.rows, tt.cols, err)
			}
		})
	}
}

func TestNew_DeterministicForSeed(t *testing.T) {
	a, _ := New(8, 8, rand.New(rand.NewPCG(7, 7)))
	b, _ := New(8, 8, rand.New(rand.NewPCG(7, 7)))

	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			if a.PositionAt(i, j) != b.PositionAt(i, j) || a.VelocityAt(i, j) != b.VelocityAt(i, j) {
				t.Fatalf("grids from identical seeds differ at (%d,%d)", i, j)
			}
		}
	}
}

func TestDisplaySnapshot_CopiesState(t *testing.T) {
	s, _ := New(4, 5, newTestRand())

	snap := s.DisplaySnapshot(nil)
	if len(snap) != 20 {
		t.Fatalf("snapshot length = %d; want 20", len(snap))
	}

	// Mutating the snapshot must not leak into the grid.
	orig := s.PositionAt(0, 0)
	snap[0] = geometry.Vec3{X: 99, Y: 99, Z: 99}
	if s.PositionAt(0, 0) != orig {
		t.Error("snapshot aliases internal position buffer")
	}

	// A sufficiently large dst is reused in place.
	dst := make([]geometry.Vec3, 0, 20)
	got := s.DisplaySnapshot(dst)
	if &got[0] != &dst[:1][0] {
		t.Error("DisplaySnapshot did not reuse the provided buffer")
	}
}

func TestCroppedSnapshot(t *testing.T) {
	s, _ := New(4, 6, newTestRand())

	crop, rows, cols := s.CroppedSnapshot(1)
	if rows != 2 || cols != 4 {
		t.Fatalf("cropped dims = %dx%d; want 2x4", rows, cols)
	}
	if len(crop) != rows*cols {
		t.Fatalf("cropped length = %d; want %d", len(crop), rows*cols)
	}
	if crop[0] != s.PositionAt(1, 1) {
		t.Errorf("crop[0] = %v; want interior cell (1,1) = %v", crop[0], s.PositionAt(1, 1))
	}
	if crop[len(crop)-1] != s.PositionAt(2, 4) {
		t.Errorf("last crop cell = %v; want interior cell (2,4) = %v", crop[len(crop)-1], s.PositionAt(2, 4))
	}

	t.Run("margin leaves nothing", func(t *testing.T) {
		got, rows, cols := s.CroppedSnapshot(3)
		if got != nil || rows != 0 || cols != 0 {
			t.Errorf("over-large margin: got %v (%dx%d); want empty", got, rows, cols)
		}
	})

	t.Run("negative margin behaves as zero", func(t *testing.T) {
		got, rows, cols := s.CroppedSnapshot(-2)
		if rows != 4 || cols != 6 || len(got) != 24 {
			t.Errorf("negative margin: got %dx%d (%d cells); want full 4x6", rows, cols, len(got))
		}
	})
}
