package configuration

type FanConfig struct {
	ID string `json:"id"`

	HwMon   *HwMonFanConfig   `json:"hwmon,omitempty"`
	File    *FileFanConfig    `json:"file,omitempty"`
	Cmd     *CmdFanConfig     `json:"cmd,omitempty"`
	Virtual *VirtualFanConfig `json:"virtual,omitempty"`

	RpmMin   int `json:"rpmMin"`
	RpmStart int `json:"rpmStart"`
	RpmMax   int `json:"rpmMax"`

	Control FanControlConfig `json:"control"`
}

type HwMonFanConfig struct {
	Platform string `json:"platform"`
	Index    int    `json:"index"`
	// RpmToPwm maps target rpm values to pwm values, interpolated linearly
	RpmToPwm map[int]int `json:"rpmToPwm,omitempty"`
}

type FileFanConfig struct {
	// Path receives the target rpm
	Path string `json:"path"`
	// RpmPath provides the actual rpm, defaults to Path
	RpmPath string `json:"rpmPath,omitempty"`
}

type CmdFanConfig struct {
	// SetRpm is called with the target rpm as additional argument
	SetRpm *CmdSourceConfig `json:"setRpm"`
	GetRpm *CmdSourceConfig `json:"getRpm,omitempty"`
}

type VirtualFanConfig struct{}

const (
	StrategyRamp  = "ramp"
	StrategyTable = "table"
	StrategyZones = "zones"
)

var Strategies = []string{StrategyRamp, StrategyTable, StrategyZones}

type FanControlConfig struct {
	// Strategy selects how the target rpm is computed, defaults to StrategyRamp
	Strategy string `json:"strategy"`

	Table *TableSelectionConfig `json:"table,omitempty"`
	Zones []ZoneConfig          `json:"zones,omitempty"`
}

// TableSelectionConfig resolves the active fan table on every tick
type TableSelectionConfig struct {
	// Default is the id of the table used when no mode matches
	Default string `json:"default"`
	// Modes maps a mode value to a table id
	Modes map[string]string `json:"modes,omitempty"`
	// ModeSource provides the current mode value
	ModeSource *ValueSourceConfig `json:"modeSource,omitempty"`
	// Column is the index into the rpm values of each table level
	Column int `json:"column"`
}

// ZoneConfig is one cooling zone of the zones strategy, zones are
// listed in descending priority.
type ZoneConfig struct {
	Kind    string   `json:"kind"`
	Sensors []string `json:"sensors"`
	// Steps maps a cooling demand percent to a target rpm
	Steps map[int]int `json:"steps"`
}
