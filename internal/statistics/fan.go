package statistics

import (
	"context"
	"github.com/markusressel/ecthermal/internal/fans"
	"github.com/prometheus/client_golang/prometheus"
)

const fanSubsystem = "fan"

type FanCollector struct {
	fans      []fans.Fan
	rpmTarget *prometheus.Desc
	rpm       *prometheus.Desc
}

func NewFanCollector(fans []fans.Fan) *FanCollector {
	return &FanCollector{
		fans: fans,
		rpmTarget: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "rpm_target"),
			"Target RPM value of the fan",
			[]string{"id"}, nil,
		),
		rpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "rpm"),
			"Current RPM value of the fan",
			[]string{"id"}, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.rpmTarget
	ch <- collector.rpm
}

// Collect implements required collect function for all prometheus collectors
func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	for _, fan := range collector.fans {
		fanId := fan.GetId()
		ch <- prometheus.MustNewConstMetric(collector.rpmTarget, prometheus.GaugeValue, float64(fan.GetRpmTarget()), fanId)
		rpm, err := fan.GetRpmActual(context.Background())
		if err != nil {
			continue
		}
		ch <- prometheus.MustNewConstMetric(collector.rpm, prometheus.GaugeValue, float64(rpm), fanId)
	}
}
