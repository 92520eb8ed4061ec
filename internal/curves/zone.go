package curves

import (
	"context"
	"fmt"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/util"
	"golang.org/x/exp/slices"
)

var zonePriority = []string{
	configuration.SensorKindCharger,
	configuration.SensorKindSoc,
	configuration.SensorKindDdr,
	configuration.SensorKindAmbient,
}

// Zone is a group of sensors sharing a percent to rpm table
type Zone struct {
	Kind    string      `json:"kind"`
	Sensors []int       `json:"sensors"`
	Steps   map[int]int `json:"steps"`
}

// ZoneStrategy computes a cooling demand per zone and drives the fan with
// the rpm table of the highest priority zone that demands any cooling.
type ZoneStrategy struct {
	outputHolder

	zones []Zone
}

// NewZoneStrategy orders zones charger > soc > ddr > ambient, zones of
// other kinds follow in their given order.
func NewZoneStrategy(zones []Zone) *ZoneStrategy {
	sorted := slices.Clone(zones)
	slices.SortStableFunc(sorted, func(a, b Zone) int {
		return zoneRank(a.Kind) - zoneRank(b.Kind)
	})
	return &ZoneStrategy{zones: sorted}
}

func zoneRank(kind string) int {
	rank := slices.Index(zonePriority, kind)
	if rank < 0 {
		return len(zonePriority)
	}
	return rank
}

func newZoneStrategyFromConfig(
	fanConfig configuration.FanConfig,
	sensorConfigs []configuration.SensorConfig,
	sensorIndex map[string]int,
) (Strategy, error) {
	var zones []Zone
	for _, zoneConfig := range fanConfig.Control.Zones {
		zone := Zone{
			Kind:  zoneConfig.Kind,
			Steps: zoneConfig.Steps,
		}
		for _, sensorId := range zoneConfig.Sensors {
			index, ok := sensorIndex[sensorId]
			if !ok {
				return nil, fmt.Errorf("fan %s: zone references unknown sensor '%s'", fanConfig.ID, sensorId)
			}
			zone.Sensors = append(zone.Sensors, index)
			if len(zone.Kind) <= 0 {
				zone.Kind = sensorConfigs[index].Kind
			}
		}
		zones = append(zones, zone)
	}
	return NewZoneStrategy(zones), nil
}

func (s *ZoneStrategy) GetName() string {
	return "zones"
}

func (s *ZoneStrategy) Compute(ctx context.Context, snapshot Snapshot) (Output, error) {
	output := Output{Level: NoValue, Percent: 0, Rpm: 0}
	for i, zone := range s.zones {
		percent := zone.percent(snapshot)
		if percent <= 0 {
			continue
		}
		output = Output{
			Level:   i,
			Percent: percent,
			Rpm:     util.InterpolateInt(zone.Steps, percent),
		}
		break
	}
	s.set(output)
	return output, nil
}

func (z Zone) percent(snapshot Snapshot) int {
	result := 0
	for _, index := range z.Sensors {
		if index < 0 || index >= len(snapshot.Percents) {
			continue
		}
		if snapshot.Percents[index] > result {
			result = snapshot.Percents[index]
		}
	}
	return result
}

// Zones returns the zones in priority order
func (s *ZoneStrategy) Zones() []Zone {
	return s.zones
}
