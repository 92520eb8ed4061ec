package curves

import "github.com/markusressel/ecthermal/internal/util"

// LevelState is the mutable state of one fan walking a table
type LevelState struct {
	Level int `json:"level"`
	// Previous holds the last valid reading per table column
	Previous []int `json:"previous"`

	pendingTrend Trend
	pendingTicks int
}

func NewLevelState(columns int) *LevelState {
	return &LevelState{
		Previous: make([]int, columns),
	}
}

// Evaluate walks the table from the current level of state and returns the
// next level. readings must be in table column order.
//
// Falling is tested first: the level drops one step at a time while all
// participating sensors are below the off value of the current level.
// Rising steps up while the rising rule is satisfied for the on values of
// the current level. Without movement the level is kept.
//
// With a debounce of N the walk result is only committed once the same
// trend has been seen on N consecutive ticks. Ticks without a trend count
// towards a pending trend, so a temperature holding above a threshold still
// moves the level.
func Evaluate(table *Table, state *LevelState, readings []Reading) int {
	top := len(table.Levels) - 1
	if len(state.Previous) != len(readings) {
		state.Previous = make([]int, len(readings))
	}
	state.Level = util.Coerce(state.Level, 0, top)

	trend := table.trend(state.Previous, readings)
	if trend == TrendInvariant && table.Debounce > 0 && state.pendingTicks > 0 {
		trend = state.pendingTrend
	}

	candidate := state.Level
	switch trend {
	case TrendDecreasing:
		for i := state.Level; i > 0; i-- {
			if !table.isUnder(table.Levels[i], readings) {
				break
			}
			candidate = i - 1
		}
	case TrendIncreasing:
		for i := state.Level; i < top; i++ {
			if !table.isOver(table.Levels[i], readings) {
				break
			}
			candidate = i + 1
		}
	}
	candidate = util.Coerce(candidate, 0, top)

	for i, reading := range readings {
		if reading.Valid {
			state.Previous[i] = reading.Value
		}
	}

	if trend != TrendInvariant {
		if trend != state.pendingTrend {
			state.pendingTrend = trend
			state.pendingTicks = 0
		}
		state.pendingTicks++
	}

	if candidate != state.Level {
		if table.Debounce > 0 && state.pendingTicks < table.Debounce {
			return state.Level
		}
		state.Level = candidate
		state.pendingTicks = 0
	}

	return state.Level
}
