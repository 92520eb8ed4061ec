package fans

import (
	"context"
	"fmt"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/util"
	"strconv"
	"sync"
)

type CmdFan struct {
	Config configuration.FanConfig `json:"config"`

	mu        sync.Mutex
	rpmTarget int
}

func (fan *CmdFan) GetId() string {
	return fan.Config.ID
}

func (fan *CmdFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

func (fan *CmdFan) SetRpmMode(ctx context.Context, enabled bool) error {
	return nil
}

// SetRpmTarget runs the setRpm command with the target rpm as last argument
func (fan *CmdFan) SetRpmTarget(ctx context.Context, rpm int) error {
	conf := fan.Config.Cmd.SetRpm
	if conf == nil {
		return fmt.Errorf("fan %s: no setRpm command configured", fan.GetId())
	}

	args := append(append([]string{}, conf.Args...), strconv.Itoa(rpm))
	if _, err := util.SafeCmdExecution(ctx, conf.Exec, args, util.DefaultCmdTimeout); err != nil {
		return fmt.Errorf("fan %s: %w", fan.GetId(), err)
	}

	fan.mu.Lock()
	defer fan.mu.Unlock()
	fan.rpmTarget = rpm
	return nil
}

func (fan *CmdFan) GetRpmTarget() int {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	return fan.rpmTarget
}

// GetRpmActual runs the getRpm command, without one the target is reported
func (fan *CmdFan) GetRpmActual(ctx context.Context) (int, error) {
	conf := fan.Config.Cmd.GetRpm
	if conf == nil {
		return fan.GetRpmTarget(), nil
	}

	result, err := util.SafeCmdExecution(ctx, conf.Exec, conf.Args, util.DefaultCmdTimeout)
	if err != nil {
		return 0, err
	}

	rpm, err := strconv.ParseFloat(result, 64)
	if err != nil {
		return 0, fmt.Errorf("fan %s: unable to parse output of %s: %w", fan.GetId(), conf.Exec, err)
	}
	return int(rpm), nil
}
