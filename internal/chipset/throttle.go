package chipset

import (
	"context"
	"github.com/markusressel/ecthermal/internal/ui"
	"sync"
)

type ThrottleType int

const (
	// ThrottleSoft asks the host to throttle itself
	ThrottleSoft ThrottleType = iota
	// ThrottleHard throttles the CPU directly
	ThrottleHard
)

func (t ThrottleType) String() string {
	if t == ThrottleHard {
		return "hard"
	}
	return "soft"
}

type ThrottleSource uint32

const (
	SourceThermal ThrottleSource = 1 << iota
	SourcePower
)

func (s ThrottleSource) String() string {
	switch s {
	case SourceThermal:
		return "thermal"
	case SourcePower:
		return "power"
	default:
		return "unknown"
	}
}

// Throttler combines throttle requests of multiple sources. The chipset is
// only told to change when the combined request of a throttle type changes.
type Throttler struct {
	chipset Chipset

	mu       sync.Mutex
	requests [2]ThrottleSource
}

func NewThrottler(chipset Chipset) *Throttler {
	return &Throttler{chipset: chipset}
}

func (t *Throttler) Throttle(ctx context.Context, enabled bool, throttleType ThrottleType, source ThrottleSource) {
	t.mu.Lock()
	defer t.mu.Unlock()

	previous := t.requests[throttleType]
	if enabled {
		t.requests[throttleType] |= source
	} else {
		t.requests[throttleType] &^= source
	}
	current := t.requests[throttleType]

	ui.Info("Set AP throttling type %s to %s (source %s, requests 0x%02x)", throttleType, onOff(current != 0), source, uint32(current))

	if (previous != 0) == (current != 0) {
		return
	}

	switch throttleType {
	case ThrottleSoft:
		t.chipset.HostThrottleCPU(ctx, current != 0)
	case ThrottleHard:
		t.chipset.ThrottleCPU(ctx, current != 0)
	}
}

// Requests returns the active sources of the given throttle type
func (t *Throttler) Requests(throttleType ThrottleType) ThrottleSource {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.requests[throttleType]
}

func onOff(value bool) string {
	if value {
		return "on"
	}
	return "off"
}
