package flock

import (
	"runtime"
	"sync"
)

// ApplyTick advances the grid by exactly one synchronous step.
//
// Every cell's new state is computed from the pre-tick snapshot only:
// workers read pos/vel, write disjoint row ranges of the scratch buffers,
// and the buffer pairs are swapped after the WaitGroup barrier. The result
// is bit-identical regardless of how many workers run, so ticking stays
// deterministic for a given initial state and weight sequence.
//
// Weights and the window size are validated first; on any validation error
// the grid is left untouched. Degenerate arithmetic (coincident cells,
// zero-norm averages) is handled inside ComputeForces and is never an
// error.
func ApplyTick(s *State, w Weights, windowSize int) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if err := validateWindow(windowSize, s.rows, s.cols); err != nil {
		return err
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > s.rows {
		workers = s.rows
	}
	chunk := (s.rows + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < s.rows; start += chunk {
		end := start + chunk
		if end > s.rows {
			end = s.rows
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			s.tickRows(start, end, w, windowSize)
		}(start, end)
	}
	wg.Wait()

	s.pos, s.nextPos = s.nextPos, s.pos
	s.vel, s.nextVel = s.nextVel, s.vel
	return nil
}

// tickRows integrates the cells of rows [start, end) into the scratch
// buffers. Each worker owns its own Extractor so the shared state is
// read-only during the compute phase.
func (s *State) tickRows(start, end int, w Weights, windowSize int) {
	ex := NewExtractor(windowSize)
	for i := start; i < end; i++ {
		for j := 0; j < s.cols; j++ {
			idx := s.index(i, j)
			pos, vel := s.pos[idx], s.vel[idx]

			f := ComputeForces(ex.Extract(s, i, j), pos, vel)
			acc := f.Separation.Mul(w.Separation).
				Add(f.Alignment.Mul(w.Alignment)).
				Add(f.Cohesion.Mul(w.Cohesion))

			newVel := vel.Add(acc).Clamp(-MaxSpeed, MaxSpeed)
			s.nextVel[idx] = newVel
			s.nextPos[idx] = pos.Add(newVel).Clamp(0, 1)
		}
	}
}
