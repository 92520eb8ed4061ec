package fans

import (
	"context"
	"fmt"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/hwmon"
	"github.com/markusressel/ecthermal/internal/ui"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	MaxPwmValue = 255
	MinPwmValue = 0
)

// ControlMode values of pwmX_enable
const (
	ControlModeDisabled  = 0
	ControlModePWM       = 1
	ControlModeAutomatic = 2
)

var (
	FanMap = cmap.New[Fan]()
)

type Fan interface {
	GetId() string

	GetConfig() configuration.FanConfig

	// SetRpmMode switches the fan between rpm control by this daemon and
	// the control of its hardware
	SetRpmMode(ctx context.Context, enabled bool) error

	// SetRpmTarget sets the target rpm, 0 stops the fan
	SetRpmTarget(ctx context.Context, rpm int) error
	// GetRpmTarget returns the last target rpm that was set
	GetRpmTarget() int

	// GetRpmActual returns the measured rpm of this fan
	GetRpmActual(ctx context.Context) (int, error)
}

func NewFan(config configuration.FanConfig, chips []*hwmon.Chip) (Fan, error) {
	if config.HwMon != nil {
		channel, err := hwmon.FindFanChannel(chips, config.HwMon.Platform, config.HwMon.Index)
		if err != nil {
			return nil, fmt.Errorf("fan %s: %w", config.ID, err)
		}
		return &HwMonFan{
			Label:     channel.Label,
			Index:     channel.Index,
			RpmInput:  channel.RpmInput,
			PwmOutput: channel.PwmOutput,
			PwmEnable: channel.PwmEnable,
			Config:    config,
		}, nil
	}

	if config.File != nil {
		return &FileFan{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdFan{
			Config: config,
		}, nil
	}

	if config.Virtual != nil {
		return &VirtualFan{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching fan type for fan: %s", config.ID)
}

// PercentToRpm maps a cooling demand to the rpm range of the fan,
// 0 percent stops the fan.
func PercentToRpm(config configuration.FanConfig, percent int) int {
	if percent <= 0 {
		return 0
	}
	if percent > 100 {
		percent = 100
	}
	return config.RpmMin + (config.RpmMax-config.RpmMin)*percent/100
}

// SetPercentNeeded sets the target rpm for the given cooling demand. A fan
// that is (almost) standing still is started with at least its start rpm.
func SetPercentNeeded(ctx context.Context, fan Fan, percent int) error {
	config := fan.GetConfig()
	return SetRpmNeeded(ctx, fan, PercentToRpm(config, percent))
}

// SetRpmNeeded sets the given target rpm, applying the start rpm boost of
// SetPercentNeeded.
func SetRpmNeeded(ctx context.Context, fan Fan, rpm int) error {
	config := fan.GetConfig()

	actual, err := fan.GetRpmActual(ctx)
	if err != nil {
		ui.Debug("Unable to read rpm of fan %s, assuming it is stopped: %v", fan.GetId(), err)
		actual = 0
	}

	if rpm > 0 && actual < config.RpmMin*9/10 && rpm < config.RpmStart {
		rpm = config.RpmStart
	}

	if rpm != fan.GetRpmTarget() {
		ui.Info("Setting fan %s RPM to %d", fan.GetId(), rpm)
	}
	return fan.SetRpmTarget(ctx, rpm)
}
