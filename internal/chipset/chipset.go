package chipset

import (
	"context"
	"fmt"
	"github.com/markusressel/ecthermal/internal/configuration"
	"strings"
)

// State is a bitmask of chipset power states
type State uint8

const (
	StateHardOff State = 1 << iota
	StateSoftOff
	StateSuspend
	StateOn

	StateAnyOff = StateHardOff | StateSoftOff
)

func (s State) String() string {
	var names []string
	if s&StateHardOff != 0 {
		names = append(names, configuration.ChipsetStateHardOff)
	}
	if s&StateSoftOff != 0 {
		names = append(names, configuration.ChipsetStateSoftOff)
	}
	if s&StateSuspend != 0 {
		names = append(names, configuration.ChipsetStateSuspend)
	}
	if s&StateOn != 0 {
		names = append(names, configuration.ChipsetStateOn)
	}
	if len(names) <= 0 {
		return "unknown"
	}
	return strings.Join(names, "|")
}

func ParseState(text string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case configuration.ChipsetStateHardOff:
		return StateHardOff, nil
	case configuration.ChipsetStateSoftOff:
		return StateSoftOff, nil
	case configuration.ChipsetStateSuspend:
		return StateSuspend, nil
	case configuration.ChipsetStateOn:
		return StateOn, nil
	default:
		return 0, fmt.Errorf("unknown chipset state '%s'", text)
	}
}

type ShutdownReason string

const (
	ShutdownThermal ShutdownReason = "thermal"
)

// Chipset is the power and throttle interface of the host system
type Chipset interface {
	// Poll refreshes the current power state, called once per tick
	Poll(ctx context.Context) error
	// InState reports whether the chipset is in any of the states of mask
	InState(mask State) bool
	// ForceShutdown powers off the system immediately
	ForceShutdown(ctx context.Context, reason ShutdownReason)
	// ThrottleCPU toggles hard throttling of the CPU
	ThrottleCPU(ctx context.Context, enabled bool)
	// HostThrottleCPU asks the host to throttle itself
	HostThrottleCPU(ctx context.Context, enabled bool)
}
