package flock

import "math"

// Physics caps of the model. These are fixed, not configurable: every
// velocity component stays within [-MaxSpeed, MaxSpeed] and every steering
// force component within [-MaxForce, MaxForce].
const (
	MaxSpeed = 0.02
	MaxForce = 0.002
)

// Accepted range for caller-supplied steering weights.
const (
	MinWeight = 0.0
	MaxWeight = 5.0
)

// Weights holds the three steering weights supplied fresh on every tick.
// The core never stores them; a UI or config layer owns their lifecycle.
type Weights struct {
	Separation float64 `json:"separation" yaml:"separation"`
	Alignment  float64 `json:"alignment" yaml:"alignment"`
	Cohesion   float64 `json:"cohesion" yaml:"cohesion"`
}

// DefaultWeights returns the weights of the reference run.
func DefaultWeights() Weights {
	return Weights{
		Separation: 1.5,
		Alignment:  2.3,
		Cohesion:   4.0,
	}
}

// Validate checks every weight before it is used.
// It returns an *InvalidWeightError naming the first offending weight.
func (w Weights) Validate() error {
	if err := checkWeight("separation", w.Separation); err != nil {
		return err
	}
	if err := checkWeight("alignment", w.Alignment); err != nil {
		return err
	}
	return checkWeight("cohesion", w.Cohesion)
}

func checkWeight(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < MinWeight || v > MaxWeight {
		return &InvalidWeightError{Name: name, Value: v}
	}
	return nil
}
