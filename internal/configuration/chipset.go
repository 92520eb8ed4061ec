package configuration

const (
	ChipsetStateHardOff = "hard-off"
	ChipsetStateSoftOff = "soft-off"
	ChipsetStateSuspend = "suspend"
	ChipsetStateOn      = "on"
)

var ChipsetStates = []string{ChipsetStateHardOff, ChipsetStateSoftOff, ChipsetStateSuspend, ChipsetStateOn}

type ChipsetConfig struct {
	// State is the source of the current power state, one of ChipsetStates
	State ValueSourceConfig `json:"state"`

	// Shutdown is executed when the HALT threshold is crossed
	Shutdown *CmdSourceConfig `json:"shutdown,omitempty"`
	// Throttle is executed with an additional "on" or "off" argument
	// whenever the hard (HIGH) throttle request changes
	Throttle *CmdSourceConfig `json:"throttle,omitempty"`
	// HostThrottle is executed with an additional "on" or "off" argument
	// whenever the soft (WARN) throttle request changes
	HostThrottle *CmdSourceConfig `json:"hostThrottle,omitempty"`
}
