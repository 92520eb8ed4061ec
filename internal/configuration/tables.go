package configuration

const (
	UnitCelsius = "celsius"
	UnitKelvin  = "kelvin"

	DirectionAny = "any"
	DirectionAll = "all"

	// UnusedThreshold marks a sensor as not participating in a table level
	UnusedThreshold = -1
)

// TableConfig describes a discrete fan table evaluated with hysteresis
type TableConfig struct {
	ID string `json:"id"`
	// Unit of all on/off values, defaults to celsius
	Unit string `json:"unit"`
	// Sensors are the ids of the sensors, one per on/off column
	Sensors []string `json:"sensors"`
	// Direction decides whether any or all sensors must move
	// to detect a rising or falling temperature, defaults to any
	Direction string `json:"direction"`
	// Rising is an OR of AND groups of sensor ids, a level is exceeded
	// if all participating sensors of any group are above their on value.
	// Defaults to a single group with all sensors.
	Rising [][]string `json:"rising,omitempty"`
	// Debounce is the number of consecutive ticks a direction must
	// persist before a level change is committed, 0 disables it
	Debounce int `json:"debounce"`
	// Filter optionally smooths one sensor with a moving average
	Filter *FilterConfig `json:"filter,omitempty"`

	Levels []LevelConfig `json:"levels"`
}

type FilterConfig struct {
	Sensor string `json:"sensor"`
	Window int    `json:"window"`
}

type LevelConfig struct {
	On  []int `json:"on"`
	Off []int `json:"off"`
	Rpm []int `json:"rpm"`
}
