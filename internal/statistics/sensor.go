package statistics

import (
	"github.com/markusressel/ecthermal/internal/thermal"
	"github.com/prometheus/client_golang/prometheus"
	"strconv"
)

const subsystemSensor = "sensor"

// SensorCollector reports the readings of the last thermal tick, sensors
// are never read during a scrape
type SensorCollector struct {
	engine  *thermal.Engine
	kelvin  *prometheus.Desc
	up      *prometheus.Desc
	percent *prometheus.Desc
}

func NewSensorCollector(engine *thermal.Engine) *SensorCollector {
	labels := []string{"index", "name"}
	return &SensorCollector{
		engine: engine,
		kelvin: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "kelvin"),
			"Last known temperature of the sensor in Kelvin",
			labels, nil,
		),
		up: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "up"),
			"Whether the sensor was read successfully in the last tick",
			labels, nil,
		),
		percent: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "fan_percent"),
			"Cooling demand of the sensor in percent",
			labels, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.kelvin
	ch <- collector.up
	ch <- collector.percent
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, sensor := range collector.engine.Status().Sensors {
		index := strconv.Itoa(sensor.Index)
		up := 0.0
		if sensor.Status == thermal.SensorStatusOk {
			up = 1
		}
		ch <- prometheus.MustNewConstMetric(collector.kelvin, prometheus.GaugeValue, float64(sensor.Kelvin), index, sensor.Name)
		ch <- prometheus.MustNewConstMetric(collector.up, prometheus.GaugeValue, up, index, sensor.Name)
		if sensor.Percent >= 0 {
			ch <- prometheus.MustNewConstMetric(collector.percent, prometheus.GaugeValue, float64(sensor.Percent), index, sensor.Name)
		}
	}
}
