package chipset

import (
	"context"
	"fmt"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/sources"
	"github.com/markusressel/ecthermal/internal/ui"
	"github.com/markusressel/ecthermal/internal/util"
	"sync"
)

// System is the chipset of the machine ecthermal runs on. The power state is
// read from a configurable source, shutdown and throttling are delegated to
// configured commands.
type System struct {
	Config configuration.ChipsetConfig

	source sources.ValueSource

	mu    sync.RWMutex
	state State
}

func NewSystem(config configuration.ChipsetConfig) (*System, error) {
	source, err := sources.NewValueSource(config.State)
	if err != nil {
		return nil, fmt.Errorf("chipset state: %w", err)
	}
	return &System{
		Config: config,
		source: source,
		state:  StateOn,
	}, nil
}

func (s *System) Poll(ctx context.Context) error {
	value, err := s.source.GetValue(ctx)
	if err != nil {
		return err
	}
	state, err := ParseState(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if state != s.state {
		ui.Info("Chipset state changed from %s to %s", s.state, state)
		s.state = state
	}
	return nil
}

func (s *System) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *System) InState(mask State) bool {
	return s.State()&mask != 0
}

func (s *System) ForceShutdown(ctx context.Context, reason ShutdownReason) {
	ui.ErrorAndNotify("Thermal Shutdown", "Forcing system shutdown, reason: %s", reason)
	if s.Config.Shutdown == nil {
		ui.Error("No shutdown command configured")
		return
	}
	args := append(append([]string{}, s.Config.Shutdown.Args...), string(reason))
	if _, err := util.SafeCmdExecution(ctx, s.Config.Shutdown.Exec, args, util.DefaultCmdTimeout); err != nil {
		ui.Error("Shutdown command failed: %v", err)
	}
}

func (s *System) ThrottleCPU(ctx context.Context, enabled bool) {
	s.runToggle(ctx, "throttle", s.Config.Throttle, enabled)
}

func (s *System) HostThrottleCPU(ctx context.Context, enabled bool) {
	s.runToggle(ctx, "host throttle", s.Config.HostThrottle, enabled)
}

func (s *System) runToggle(ctx context.Context, name string, cmd *configuration.CmdSourceConfig, enabled bool) {
	if cmd == nil {
		ui.Debug("No %s command configured, ignoring request (%v)", name, enabled)
		return
	}
	value := "off"
	if enabled {
		value = "on"
	}
	args := append(append([]string{}, cmd.Args...), value)
	if _, err := util.SafeCmdExecution(ctx, cmd.Exec, args, util.DefaultCmdTimeout); err != nil {
		ui.Error("Unable to set %s %s: %v", name, value, err)
	}
}
