package controller

import (
	"context"
	"fmt"
	"github.com/markusressel/ecthermal/internal/chipset"
	"github.com/markusressel/ecthermal/internal/curves"
	"github.com/markusressel/ecthermal/internal/fans"
	"github.com/markusressel/ecthermal/internal/ui"
	"sync"
)

// FanController applies the output of a fan's strategy once per tick
type FanController struct {
	fan      fans.Fan
	strategy curves.Strategy
	chipset  chipset.Chipset

	mu          sync.Mutex
	autoControl bool
	lastError   error

	// writeMu orders rpm writes of the thermal loop and manual requests
	writeMu sync.Mutex
}

func NewFanController(fan fans.Fan, strategy curves.Strategy, chip chipset.Chipset) *FanController {
	return &FanController{
		fan:         fan,
		strategy:    strategy,
		chipset:     chip,
		autoControl: true,
	}
}

func (f *FanController) GetFan() fans.Fan {
	return f.fan
}

func (f *FanController) GetStrategy() curves.Strategy {
	return f.strategy
}

// Start takes over rpm control of the fan
func (f *FanController) Start(ctx context.Context) error {
	if err := f.fan.SetRpmMode(ctx, true); err != nil {
		return fmt.Errorf("unable to enable rpm control of fan %s: %w", f.fan.GetId(), err)
	}
	return nil
}

// Restore hands the fan back to its hardware control
func (f *FanController) Restore(ctx context.Context) {
	ui.Info("Trying to restore fan settings for %s...", f.fan.GetId())
	if err := f.fan.SetRpmMode(ctx, false); err == nil {
		return
	}
	// if this fails, try to set it to max speed instead
	if err := f.fan.SetRpmTarget(ctx, f.fan.GetConfig().RpmMax); err != nil {
		ui.Warning("Unable to restore fan %s, make sure it is running!", f.fan.GetId())
	}
}

// Update computes and applies the target rpm for the given snapshot.
// Fans are stopped while the chipset is off and left alone while thermal
// control is disabled.
func (f *FanController) Update(ctx context.Context, snapshot curves.Snapshot) {
	if !f.IsAutoControl() {
		return
	}

	var err error
	if f.chipset.InState(chipset.StateAnyOff) {
		err = f.writeAuto(func() error {
			return f.setRpm(ctx, 0)
		})
	} else {
		err = f.applyStrategy(ctx, snapshot)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil && (f.lastError == nil || f.lastError.Error() != err.Error()) {
		ui.Error("Error in FanController for fan %s: %v", f.fan.GetId(), err)
	}
	f.lastError = err
}

func (f *FanController) applyStrategy(ctx context.Context, snapshot curves.Snapshot) error {
	output, err := f.strategy.Compute(ctx, snapshot)
	if err != nil {
		return err
	}
	return f.writeAuto(func() error {
		if output.Rpm == curves.NoValue {
			return fans.SetPercentNeeded(ctx, f.fan, output.Percent)
		}
		return f.setRpm(ctx, output.Rpm)
	})
}

// writeAuto runs apply unless thermal control has been disabled since the
// tick started. A manual rpm set in the meantime wins.
func (f *FanController) writeAuto(apply func() error) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	if !f.IsAutoControl() {
		return nil
	}
	return apply()
}

func (f *FanController) setRpm(ctx context.Context, rpm int) error {
	if rpm != f.fan.GetRpmTarget() {
		ui.Info("Setting fan %s RPM to %d", f.fan.GetId(), rpm)
	}
	return f.fan.SetRpmTarget(ctx, rpm)
}

// SetAutoControl enables or disables thermal control of the fan
func (f *FanController) SetAutoControl(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.autoControl != enabled {
		ui.Info("Thermal control of fan %s: %t", f.fan.GetId(), enabled)
	}
	f.autoControl = enabled
}

func (f *FanController) IsAutoControl() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.autoControl
}

// SetManualRpm disables thermal control and sets the given target rpm
func (f *FanController) SetManualRpm(ctx context.Context, rpm int) error {
	if rpm < 0 {
		return fmt.Errorf("invalid rpm %d", rpm)
	}
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	f.SetAutoControl(false)
	return f.setRpm(ctx, rpm)
}

// Group dispatches every tick to all of its controllers
type Group struct {
	controllers []*FanController
}

func NewGroup(controllers ...*FanController) *Group {
	return &Group{controllers: controllers}
}

func (g *Group) Update(ctx context.Context, snapshot curves.Snapshot) {
	for _, controller := range g.controllers {
		controller.Update(ctx, snapshot)
	}
}

func (g *Group) Controllers() []*FanController {
	return g.controllers
}

// Get returns the controller of the fan with the given id
func (g *Group) Get(fanId string) (*FanController, bool) {
	for _, controller := range g.controllers {
		if controller.fan.GetId() == fanId {
			return controller, true
		}
	}
	return nil, false
}

// Start takes over rpm control of all fans, fans that refuse stay in the group
func (g *Group) Start(ctx context.Context) {
	for _, controller := range g.controllers {
		if err := controller.Start(ctx); err != nil {
			ui.Warning("%v", err)
		}
	}
}

func (g *Group) Restore(ctx context.Context) {
	for _, controller := range g.controllers {
		controller.Restore(ctx)
	}
}
