package flock

import "fmt"

// ConfigError reports an invalid simulation configuration.
// It is returned at construction or setup time, never mid-tick: a tick that
// would run with a bad window size is rejected before any mutation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

// InvalidWeightError reports a caller-supplied steering weight that is
// non-finite or outside the accepted [MinWeight, MaxWeight] interval.
type InvalidWeightError struct {
	Name  string
	Value float64
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("invalid weight: %s = %v, must be a finite value in [%v, %v]",
		e.Name, e.Value, MinWeight, MaxWeight)
}
