package fans

import (
	"context"
	"github.com/markusressel/ecthermal/internal/configuration"
	"sync"
)

// VirtualFan reaches its target rpm instantly unless the actual rpm is
// pinned with SetRpmActual
type VirtualFan struct {
	Config configuration.FanConfig `json:"config"`

	mu        sync.Mutex
	rpmMode   bool
	rpmTarget int
	rpmActual *int
	targets   []int
}

func (fan *VirtualFan) GetId() string {
	return fan.Config.ID
}

func (fan *VirtualFan) GetConfig() configuration.FanConfig {
	return fan.Config
}

func (fan *VirtualFan) SetRpmMode(ctx context.Context, enabled bool) error {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	fan.rpmMode = enabled
	return nil
}

func (fan *VirtualFan) IsRpmMode() bool {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	return fan.rpmMode
}

func (fan *VirtualFan) SetRpmTarget(ctx context.Context, rpm int) error {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	fan.rpmTarget = rpm
	fan.targets = append(fan.targets, rpm)
	return nil
}

func (fan *VirtualFan) GetRpmTarget() int {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	return fan.rpmTarget
}

func (fan *VirtualFan) GetRpmActual(ctx context.Context) (int, error) {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	if fan.rpmActual != nil {
		return *fan.rpmActual, nil
	}
	return fan.rpmTarget, nil
}

// SetRpmActual pins the measured rpm to the given value
func (fan *VirtualFan) SetRpmActual(rpm int) {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	fan.rpmActual = &rpm
}

// Targets returns every target rpm that was set, oldest first
func (fan *VirtualFan) Targets() []int {
	fan.mu.Lock()
	defer fan.mu.Unlock()
	return append([]int{}, fan.targets...)
}
