package curves

import (
	"github.com/asecurityteam/rolling"
	"github.com/markusressel/ecthermal/internal/util"
	"math"
)

// MovingAverage smooths a single sensor before it is fed into the evaluator
type MovingAverage struct {
	size   int
	count  int
	window *rolling.PointPolicy
}

func NewMovingAverage(size int) *MovingAverage {
	if size <= 0 {
		size = 1
	}
	return &MovingAverage{
		size:   size,
		window: util.CreateRollingWindow(size),
	}
}

// Apply adds value to the window and returns the rounded average of all
// samples seen so far, up to the window size.
func (m *MovingAverage) Apply(value int) int {
	m.window.Append(float64(value))
	if m.count < m.size {
		m.count++
	}
	return int(math.Round(util.GetWindowSum(m.window) / float64(m.count)))
}
