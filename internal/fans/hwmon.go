package fans

import (
	"context"
	"fmt"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/ui"
	"github.com/markusressel/ecthermal/internal/util"
	"sync"
)

type HwMonFan struct {
	Label     string                  `json:"label"`
	Index     int                     `json:"index"`
	RpmInput  string                  `json:"rpmInput"`
	PwmOutput string                  `json:"pwmOutput"`
	PwmEnable string                  `json:"pwmEnable"`
	Config    configuration.FanConfig `json:"config"`

	mu        sync.Mutex
	rpmTarget int
}

func (fan *HwMonFan) GetId() string {
	return fan.Config.ID
}

func (fan *HwMonFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

func (fan *HwMonFan) GetRpmActual(ctx context.Context) (int, error) {
	return util.ReadIntFromFile(fan.RpmInput)
}

func (fan *HwMonFan) GetRpmTarget() int {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	return fan.rpmTarget
}

// SetRpmTarget converts the rpm to a pwm value using the rpmToPwm map of
// the fan, a linear mapping of 0..rpmMax to 0..255 if there is none
func (fan *HwMonFan) SetRpmTarget(ctx context.Context, rpm int) error {
	pwm := fan.RpmToPwm(rpm)
	ui.Debug("Setting %s (%s) to %d rpm, pwm %d", fan.Config.ID, fan.Label, rpm, pwm)

	if err := util.WriteIntToFile(pwm, fan.PwmOutput); err != nil {
		return fmt.Errorf("fan %s: %w", fan.GetId(), err)
	}

	fan.mu.Lock()
	defer fan.mu.Unlock()
	fan.rpmTarget = rpm
	return nil
}

func (fan *HwMonFan) RpmToPwm(rpm int) int {
	if rpm <= 0 {
		return MinPwmValue
	}
	steps := fan.Config.HwMon.RpmToPwm
	if len(steps) <= 0 {
		steps = map[int]int{0: MinPwmValue, fan.Config.RpmMax: MaxPwmValue}
	}
	return util.Coerce(util.InterpolateInt(steps, rpm), MinPwmValue, MaxPwmValue)
}

// SetRpmMode writes pwmX_enable
// Possible values (unsure if these are true for all scenarios):
// 0 - no control (results in max speed)
// 1 - manual pwm control
// 2 - motherboard pwm control
func (fan *HwMonFan) SetRpmMode(ctx context.Context, enabled bool) error {
	value := ControlModeAutomatic
	if enabled {
		value = ControlModePWM
	}
	err := util.WriteIntToFile(value, fan.PwmEnable)
	if err != nil {
		return err
	}
	currentValue, err := util.ReadIntFromFile(fan.PwmEnable)
	if err != nil || currentValue != value {
		return fmt.Errorf("PWM mode stuck to %d", currentValue)
	}
	return nil
}
