package flock

import "github.com/flockgrid/go-grid-flocking/pkg/geometry"

// Forces holds the three classic flocking steering vectors computed for a
// single cell, each already clamped componentwise to +/-MaxForce.
type Forces struct {
	Separation geometry.Vec3
	Alignment  geometry.Vec3
	Cohesion   geometry.Vec3
}

// ComputeForces derives the steering forces of one cell from its
// neighborhood. pos and vel are the cell's own pre-tick state.
//
// Separation averages the unit vectors pointing away from every neighbor.
// The self term, and any coincident neighbor, yields a zero difference
// whose normalization is defined to stay zero, so overlapping cells never
// produce NaN or Inf. Alignment averages neighbor velocities and cohesion
// steers toward the neighborhood's center of mass. Each average is
// rescaled to MaxSpeed when its norm is nonzero, then turned into a
// steering force by subtracting the current velocity and clamping.
func ComputeForces(n Neighborhood, pos, vel geometry.Vec3) Forces {
	count := float64(len(n.Pos))

	var away, velSum, posSum geometry.Vec3
	for k := range n.Pos {
		away = away.Add(pos.Sub(n.Pos[k]).Normalize())
		velSum = velSum.Add(n.Vel[k])
		posSum = posSum.Add(n.Pos[k])
	}

	// Means are computed as sum/count, not sum*(1/count): the true division
	// is correctly rounded, so a neighborhood of identical values averages
	// back to exactly that value and a uniform grid stays at rest.
	return Forces{
		Separation: steer(divN(away, count), vel),
		Alignment:  steer(divN(velSum, count), vel),
		Cohesion:   steer(divN(posSum, count).Sub(pos), vel),
	}
}

func divN(v geometry.Vec3, n float64) geometry.Vec3 {
	return geometry.Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// steer converts a desired direction into a bounded steering force:
// rescale to MaxSpeed (zero stays zero), subtract the current velocity,
// clamp componentwise to +/-MaxForce.
func steer(desired, vel geometry.Vec3) geometry.Vec3 {
	return desired.WithLen(MaxSpeed).Sub(vel).Clamp(-MaxForce, MaxForce)
}
