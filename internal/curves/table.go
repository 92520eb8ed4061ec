package curves

import (
	"fmt"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/util"
)

// Unused marks a sensor that does not take part in a level
const Unused = configuration.UnusedThreshold

// Level is one row of a fan table. On and Off are indexed by table column,
// Rpm by fan column.
type Level struct {
	On  []int `json:"on"`
	Off []int `json:"off"`
	Rpm []int `json:"rpm"`
}

// Table is a discrete fan table together with the rules used to walk it
type Table struct {
	ID string `json:"id"`
	// SensorIds holds the sensor id of each column
	SensorIds []string `json:"sensorIds"`
	// Sensors holds the global sensor index of each column
	Sensors   []int     `json:"sensors"`
	Direction Direction `json:"direction"`
	// Rising is an OR of AND groups of column indices
	Rising   [][]int `json:"rising"`
	Debounce int     `json:"debounce"`
	Filter   *Filter `json:"filter,omitempty"`
	Levels   []Level `json:"levels"`
}

type Filter struct {
	Column int `json:"column"`
	Window int `json:"window"`
}

// NewTable builds a table from its configuration. All on/off values are
// converted to Kelvin, sensorIndex maps sensor ids to their global index.
func NewTable(config configuration.TableConfig, sensorIndex map[string]int) (*Table, error) {
	table := &Table{
		ID:        config.ID,
		SensorIds: config.Sensors,
		Direction: DirectionAny,
		Debounce:  config.Debounce,
	}

	if config.Direction == configuration.DirectionAll {
		table.Direction = DirectionAll
	}

	columns := map[string]int{}
	for column, sensorId := range config.Sensors {
		index, ok := sensorIndex[sensorId]
		if !ok {
			return nil, fmt.Errorf("table %s: unknown sensor '%s'", config.ID, sensorId)
		}
		table.Sensors = append(table.Sensors, index)
		columns[sensorId] = column
	}

	if len(config.Rising) > 0 {
		for _, group := range config.Rising {
			var columnGroup []int
			for _, sensorId := range group {
				column, ok := columns[sensorId]
				if !ok {
					return nil, fmt.Errorf("table %s: rising group references unknown sensor '%s'", config.ID, sensorId)
				}
				columnGroup = append(columnGroup, column)
			}
			table.Rising = append(table.Rising, columnGroup)
		}
	} else {
		var all []int
		for column := range config.Sensors {
			all = append(all, column)
		}
		table.Rising = [][]int{all}
	}

	if config.Filter != nil {
		column, ok := columns[config.Filter.Sensor]
		if !ok {
			return nil, fmt.Errorf("table %s: filter references unknown sensor '%s'", config.ID, config.Filter.Sensor)
		}
		table.Filter = &Filter{Column: column, Window: config.Filter.Window}
	}

	celsius := config.Unit != configuration.UnitKelvin
	for _, levelConfig := range config.Levels {
		level := Level{
			On:  toKelvin(levelConfig.On, celsius),
			Off: toKelvin(levelConfig.Off, celsius),
			Rpm: levelConfig.Rpm,
		}
		table.Levels = append(table.Levels, level)
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}

	return table, nil
}

func toKelvin(values []int, celsius bool) []int {
	result := make([]int, len(values))
	for i, v := range values {
		if v == Unused || !celsius {
			result[i] = v
		} else {
			result[i] = util.CelsiusToKelvin(v)
		}
	}
	return result
}

// Validate checks the structural invariants every table must satisfy
// before it can be walked.
func (t *Table) Validate() error {
	if len(t.Levels) <= 0 {
		return fmt.Errorf("table %s: no levels", t.ID)
	}
	columns := len(t.Sensors)
	for i, level := range t.Levels {
		if len(level.On) != columns || len(level.Off) != columns {
			return fmt.Errorf("table %s: level %d has %d on and %d off values for %d sensors", t.ID, i, len(level.On), len(level.Off), columns)
		}
		for c := 0; c < columns; c++ {
			if level.On[c] == Unused || level.Off[c] == Unused {
				continue
			}
			if level.On[c] < level.Off[c] {
				return fmt.Errorf("table %s: level %d column %d has on (%d) below off (%d)", t.ID, i, c, level.On[c], level.Off[c])
			}
		}
	}
	for _, group := range t.Rising {
		for _, column := range group {
			if column < 0 || column >= columns {
				return fmt.Errorf("table %s: rising group column %d out of range", t.ID, column)
			}
		}
	}
	return nil
}

// IsMonotonic reports whether on, off and rpm values never decrease with
// increasing level index. Unused entries are ignored.
func (t *Table) IsMonotonic() bool {
	for i := 1; i < len(t.Levels); i++ {
		prev := t.Levels[i-1]
		cur := t.Levels[i]
		if !nonDecreasing(prev.On, cur.On) || !nonDecreasing(prev.Off, cur.Off) || !nonDecreasing(prev.Rpm, cur.Rpm) {
			return false
		}
	}
	return true
}

func nonDecreasing(prev []int, cur []int) bool {
	for i := 0; i < len(prev) && i < len(cur); i++ {
		if prev[i] == Unused || cur[i] == Unused {
			continue
		}
		if cur[i] < prev[i] {
			return false
		}
	}
	return true
}

// Rpm returns the rpm of the given level for the given fan column
func (t *Table) Rpm(level int, column int) int {
	level = util.Coerce(level, 0, len(t.Levels)-1)
	rpm := t.Levels[level].Rpm
	if column < 0 || column >= len(rpm) {
		return 0
	}
	return rpm[column]
}
