package curves

// Direction is the combination rule used to decide whether the temperature
// is rising or falling across the sensors of a table.
type Direction int

const (
	// DirectionAny requires a single sensor to move
	DirectionAny Direction = iota
	// DirectionAll requires every sensor to move
	DirectionAll
)

func (d Direction) String() string {
	if d == DirectionAll {
		return "all"
	}
	return "any"
}

type Trend int

const (
	TrendInvariant Trend = iota
	TrendIncreasing
	TrendDecreasing
)

func (t Trend) String() string {
	switch t {
	case TrendIncreasing:
		return "increasing"
	case TrendDecreasing:
		return "decreasing"
	default:
		return "invariant"
	}
}

// Reading is one sensor value of a tick, in table column order
type Reading struct {
	Value int
	Valid bool
}

// trend compares the current readings against the previous ones.
// Faulted sensors neither rise nor fall. Decreasing takes precedence.
func (t *Table) trend(previous []int, readings []Reading) Trend {
	if t.matches(previous, readings, func(cur int, prev int) bool { return cur < prev }) {
		return TrendDecreasing
	}
	if t.matches(previous, readings, func(cur int, prev int) bool { return cur > prev }) {
		return TrendIncreasing
	}
	return TrendInvariant
}

func (t *Table) matches(previous []int, readings []Reading, moved func(cur int, prev int) bool) bool {
	valid := 0
	count := 0
	for i, reading := range readings {
		if !reading.Valid {
			continue
		}
		valid++
		if moved(reading.Value, previous[i]) {
			count++
		}
	}
	if t.Direction == DirectionAll {
		return valid > 0 && count == valid
	}
	return count > 0
}

// isOver evaluates the rising rule of a level. A group matches when it has
// at least one participating sensor and all of them are above their on value.
func (t *Table) isOver(level Level, readings []Reading) bool {
	for _, group := range t.Rising {
		participating := 0
		over := true
		for _, column := range group {
			on := level.On[column]
			if on == Unused {
				continue
			}
			participating++
			reading := readings[column]
			if !reading.Valid || reading.Value <= on {
				over = false
				break
			}
		}
		if participating > 0 && over {
			return true
		}
	}
	return false
}

// isUnder reports whether every participating sensor is below its off value
func (t *Table) isUnder(level Level, readings []Reading) bool {
	participating := 0
	for column, reading := range readings {
		off := level.Off[column]
		if off == Unused {
			continue
		}
		participating++
		if !reading.Valid || reading.Value >= off {
			return false
		}
	}
	return participating > 0
}
