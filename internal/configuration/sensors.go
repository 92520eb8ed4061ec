package configuration

const (
	SensorKindBoard   = "board"
	SensorKindCpu     = "cpu"
	SensorKindBattery = "battery"
	SensorKindCase    = "case"
	SensorKindCharger = "charger"
	SensorKindSoc     = "soc"
	SensorKindDdr     = "ddr"
	SensorKindAmbient = "ambient"
)

var SensorKinds = []string{
	SensorKindBoard, SensorKindCpu, SensorKindBattery, SensorKindCase,
	SensorKindCharger, SensorKindSoc, SensorKindDdr, SensorKindAmbient,
}

type SensorConfig struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Kind string `json:"kind"`

	HwMon     *HwMonSensorConfig     `json:"hwmon,omitempty"`
	File      *FileSensorConfig      `json:"file,omitempty"`
	Cmd       *CmdSensorConfig       `json:"cmd,omitempty"`
	Host      *HostSensorConfig      `json:"host,omitempty"`
	Composite *CompositeSensorConfig `json:"composite,omitempty"`
	Virtual   *VirtualSensorConfig   `json:"virtual,omitempty"`

	// PoweredIn lists the chipset states in which the sensor can be read,
	// empty means always powered
	PoweredIn []string `json:"poweredIn,omitempty"`

	Thresholds ThresholdsConfig `json:"thresholds"`
}

type HwMonSensorConfig struct {
	Platform  string `json:"platform"`
	Index     int    `json:"index"`
	TempInput string `json:"tempInput,omitempty"`
}

type FileSensorConfig struct {
	Path string `json:"path"`
}

type CmdSensorConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

// HostSensorConfig selects a temperature reported by the operating system,
// Key is matched against the sensor key reported by the host.
type HostSensorConfig struct {
	Key string `json:"key"`
}

const (
	CompositeMaximum = "max"
	CompositeMinimum = "min"
	CompositeAverage = "average"
)

type CompositeSensorConfig struct {
	Function string   `json:"function"`
	Sensors  []string `json:"sensors"`
}

type VirtualSensorConfig struct {
	Value Temperature `json:"value"`
}

// ThresholdsConfig is the static per sensor threshold configuration,
// all values are in Kelvin and 0 disables the respective value.
type ThresholdsConfig struct {
	Warn Temperature `json:"warn"`
	High Temperature `json:"high"`
	Halt Temperature `json:"halt"`

	WarnRelease Temperature `json:"warnRelease"`
	HighRelease Temperature `json:"highRelease"`
	HaltRelease Temperature `json:"haltRelease"`

	FanOff Temperature `json:"fanOff"`
	FanMax Temperature `json:"fanMax"`
}
