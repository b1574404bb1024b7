package flock

import (
	"math/rand/v2"

	"github.com/flockgrid/go-grid-flocking/pkg/geometry"
)

// State owns the position and velocity arrays of an H x W grid of cells.
// Positions double as the RGB color used for display, each component in
// [0, 1]. State is the only persistent, mutable piece of the simulation;
// it is mutated exactly once per tick, as a single synchronous transition.
type State struct {
	rows, cols int
	pos, vel   []geometry.Vec3
	// Scratch buffers for the next tick. Workers write here while reading
	// only from pos/vel; the pairs are swapped after the barrier so no cell
	// ever observes another cell's same-tick output.
	nextPos, nextVel []geometry.Vec3
}

// New creates a grid with positions uniform in [0, 1) and velocity
// components uniform in (-0.005, 0.005), drawn from the supplied source.
// The random source is owned by the caller; the core holds no process-wide
// randomness.
func New(rows, cols int, rng *rand.Rand) (*State, error) {
	if rows <= 0 {
		return nil, &ConfigError{Field: "rows", Reason: "must be positive"}
	}
	if cols <= 0 {
		return nil, &ConfigError{Field: "cols", Reason: "must be positive"}
	}

	n := rows * cols
	s := &State{
		rows:    rows,
		cols:    cols,
		pos:     make([]geometry.Vec3, n),
		vel:     make([]geometry.Vec3, n),
		nextPos: make([]geometry.Vec3, n),
		nextVel: make([]geometry.Vec3, n),
	}
	for i := range s.pos {
		s.pos[i] = geometry.Vec3{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
		s.vel[i] = geometry.Vec3{
			X: (rng.Float64() - 0.5) * 0.01,
			Y: (rng.Float64() - 0.5) * 0.01,
			Z: (rng.Float64() - 0.5) * 0.01,
		}
	}
	return s, nil
}

// NewFromConfig validates cfg and builds the initial grid it describes.
func NewFromConfig(cfg *Config, rng *rand.Rand) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(cfg.Rows, cfg.Cols, rng)
}

// Rows returns the grid height.
func (s *State) Rows() int { return s.rows }

// Cols returns the grid width.
func (s *State) Cols() int { return s.cols }

func (s *State) index(i, j int) int { return i*s.cols + j }

// PositionAt returns the position vector of cell (i, j).
func (s *State) PositionAt(i, j int) geometry.Vec3 { return s.pos[s.index(i, j)] }

// VelocityAt returns the velocity vector of cell (i, j).
func (s *State) VelocityAt(i, j int) geometry.Vec3 { return s.vel[s.index(i, j)] }

// SetCell overwrites the state of cell (i, j). Intended for constructing
// specific scenarios; normal evolution goes through ApplyTick.
func (s *State) SetCell(i, j int, pos, vel geometry.Vec3) {
	idx := s.index(i, j)
	s.pos[idx] = pos
	s.vel[idx] = vel
}

// Fill sets every cell to the same position and velocity.
func (s *State) Fill(pos, vel geometry.Vec3) {
	for i := range s.pos {
		s.pos[i] = pos
		s.vel[i] = vel
	}
}

// DisplaySnapshot copies the logical position array, row-major, for a
// renderer to consume. The returned slice never aliases internal buffers.
// dst is reused when it has sufficient capacity, keeping steady-state
// allocations near zero when called once per frame.
func (s *State) DisplaySnapshot(dst []geometry.Vec3) []geometry.Vec3 {
	if cap(dst) < len(s.pos) {
		dst = make([]geometry.Vec3, len(s.pos))
	}
	dst = dst[:len(s.pos)]
	copy(dst, s.pos)
	return dst
}

// CroppedSnapshot copies the position array with margin cells trimmed from
// every side, reproducing the reference display framing. It returns the
// cropped row-major values together with the cropped dimensions.
// A margin that leaves no cells yields an empty slice.
func (s *State) CroppedSnapshot(margin int) ([]geometry.Vec3, int, int) {
	if margin < 0 {
		margin = 0
	}
	rows := s.rows - 2*margin
	cols := s.cols - 2*margin
	if rows <= 0 || cols <= 0 {
		return nil, 0, 0
	}
	out := make([]geometry.Vec3, 0, rows*cols)
	for i := margin; i < s.rows-margin; i++ {
		start := s.index(i, margin)
		out = append(out, s.pos[start:start+cols]...)
	}
	return out, rows, cols
}
