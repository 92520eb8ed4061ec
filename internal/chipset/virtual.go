package chipset

import (
	"context"
	"sync"
)

// Virtual is an in-memory chipset, it records every request it receives
type Virtual struct {
	mu sync.Mutex

	State             State
	Shutdowns         []ShutdownReason
	Throttled         bool
	HostThrottled     bool
	ThrottleCalls     int
	HostThrottleCalls int
}

func NewVirtual(state State) *Virtual {
	return &Virtual{State: state}
}

func (v *Virtual) SetState(state State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.State = state
}

func (v *Virtual) Poll(ctx context.Context) error {
	return nil
}

func (v *Virtual) InState(mask State) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.State&mask != 0
}

func (v *Virtual) ForceShutdown(ctx context.Context, reason ShutdownReason) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Shutdowns = append(v.Shutdowns, reason)
}

func (v *Virtual) ThrottleCPU(ctx context.Context, enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Throttled = enabled
	v.ThrottleCalls++
}

func (v *Virtual) HostThrottleCPU(ctx context.Context, enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.HostThrottled = enabled
	v.HostThrottleCalls++
}
