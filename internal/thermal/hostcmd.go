package thermal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParam is returned for requests referencing an unknown sensor
	ErrInvalidParam = errors.New("invalid parameter")
	// ErrInvalidVersion is returned for unsupported command versions
	ErrInvalidVersion = errors.New("invalid version")
)

const (
	// CommandVersion0 used opaque per value parameters and is not supported
	CommandVersion0 = 0
	// CommandVersion1 transfers the whole configuration of one sensor
	CommandVersion1 = 1
)

type GetThresholdRequest struct {
	SensorNum int `json:"sensor_num"`
}

type SetThresholdRequest struct {
	SensorNum int             `json:"sensor_num"`
	Config    ThresholdConfig `json:"cfg"`
}

// HostCommands serves the versioned threshold get and set commands
type HostCommands struct {
	Store *ConfigStore
}

func (h *HostCommands) GetThreshold(version int, request GetThresholdRequest) (ThresholdConfig, error) {
	if version != CommandVersion1 {
		return ThresholdConfig{}, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}
	return h.Store.Get(request.SensorNum)
}

// SetThreshold replaces the configuration of one sensor. Use read, modify,
// write to change single values.
func (h *HostCommands) SetThreshold(version int, request SetThresholdRequest) error {
	if version != CommandVersion1 {
		return fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}
	return h.Store.Set(request.SensorNum, request.Config)
}
