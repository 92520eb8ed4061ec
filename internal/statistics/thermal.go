package statistics

import (
	"github.com/markusressel/ecthermal/internal/thermal"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemThermal = "thermal"

type ThermalCollector struct {
	engine       *thermal.Engine
	latch        *prometheus.Desc
	throttle     *prometheus.Desc
	failedReads  *prometheus.Desc
	validSensors *prometheus.Desc
	maxPercent   *prometheus.Desc
}

func NewThermalCollector(engine *thermal.Engine) *ThermalCollector {
	return &ThermalCollector{
		engine: engine,
		latch: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemThermal, "threshold_active"),
			"Whether the threshold condition is active",
			[]string{"threshold"}, nil,
		),
		throttle: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemThermal, "throttle_active"),
			"Whether any source requests throttling of the given type",
			[]string{"type"}, nil,
		),
		failedReads: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemThermal, "failed_reads_total"),
			"Number of failed sensor reads",
			nil, nil,
		),
		validSensors: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemThermal, "valid_sensors"),
			"Number of sensors read successfully in the last tick",
			nil, nil,
		),
		maxPercent: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemThermal, "fan_percent"),
			"Highest cooling demand of all sensors in percent",
			nil, nil,
		),
	}
}

func (collector *ThermalCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.latch
	ch <- collector.throttle
	ch <- collector.failedReads
	ch <- collector.validSensors
	ch <- collector.maxPercent
}

// Collect implements required collect function for all prometheus collectors
func (collector *ThermalCollector) Collect(ch chan<- prometheus.Metric) {
	status := collector.engine.Status()
	for name, active := range status.Latches {
		ch <- prometheus.MustNewConstMetric(collector.latch, prometheus.GaugeValue, boolToFloat(active), name)
	}
	for name, active := range status.Throttle {
		ch <- prometheus.MustNewConstMetric(collector.throttle, prometheus.GaugeValue, boolToFloat(active), name)
	}
	ch <- prometheus.MustNewConstMetric(collector.failedReads, prometheus.CounterValue, float64(collector.engine.FailedReads()))
	ch <- prometheus.MustNewConstMetric(collector.validSensors, prometheus.GaugeValue, float64(status.ValidSensors))
	ch <- prometheus.MustNewConstMetric(collector.maxPercent, prometheus.GaugeValue, float64(status.MaxPercent))
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
