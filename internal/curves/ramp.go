package curves

import "context"

// RampStrategy drives the fan with the highest ramp percent of all sensors
type RampStrategy struct {
	outputHolder
}

func NewRampStrategy() *RampStrategy {
	return &RampStrategy{}
}

func (s *RampStrategy) GetName() string {
	return "ramp"
}

func (s *RampStrategy) Compute(ctx context.Context, snapshot Snapshot) (Output, error) {
	output := Output{
		Level:   NoValue,
		Percent: snapshot.MaxPercent,
		Rpm:     NoValue,
	}
	s.set(output)
	return output, nil
}
