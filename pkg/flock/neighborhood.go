package flock

import "github.com/flockgrid/go-grid-flocking/pkg/geometry"

// Neighborhood is an ephemeral, per-cell view of the windowSize x windowSize
// block of cell states centered on a cell, the center included. The slices
// are owned by the Extractor that produced them and are overwritten by its
// next Extract call.
type Neighborhood struct {
	Pos []geometry.Vec3
	Vel []geometry.Vec3
}

// Extractor materializes cell neighborhoods. Cells that would fall outside
// the grid are filled by edge-clamp replication: the nearest logical cell's
// value is repeated into the conceptual padding, so border neighborhoods
// are always well defined and the policy is identical for positions and
// velocities.
type Extractor struct {
	window int
	half   int
	// scratch reused across Extract calls, one Extractor per worker
	pos []geometry.Vec3
	vel []geometry.Vec3
}

// NewExtractor creates an extractor for the given window size.
// The window must already be validated against the grid dimensions.
func NewExtractor(windowSize int) *Extractor {
	n := windowSize * windowSize
	return &Extractor{
		window: windowSize,
		half:   windowSize / 2,
		pos:    make([]geometry.Vec3, n),
		vel:    make([]geometry.Vec3, n),
	}
}

// WindowSize returns the configured window edge length.
func (e *Extractor) WindowSize() int { return e.window }

// Extract returns the neighborhood of cell (i, j). The block spans rows
// i-half .. i-half+window-1 and the analogous columns, which for odd
// windows is the symmetric square around the center.
func (e *Extractor) Extract(s *State, i, j int) Neighborhood {
	k := 0
	for di := 0; di < e.window; di++ {
		ni := clampIndex(i+di-e.half, s.rows-1)
		rowStart := ni * s.cols
		for dj := 0; dj < e.window; dj++ {
			nj := clampIndex(j+dj-e.half, s.cols-1)
			e.pos[k] = s.pos[rowStart+nj]
			e.vel[k] = s.vel[rowStart+nj]
			k++
		}
	}
	return Neighborhood{Pos: e.pos, Vel: e.vel}
}

func clampIndex(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

func validateWindow(windowSize, rows, cols int) error {
	if windowSize <= 0 {
		return &ConfigError{Field: "windowSize", Reason: "must be positive"}
	}
	limit := rows
	if cols < limit {
		limit = cols
	}
	if windowSize >= limit {
		return &ConfigError{Field: "windowSize", Reason: "must be smaller than the shortest grid dimension"}
	}
	return nil
}
