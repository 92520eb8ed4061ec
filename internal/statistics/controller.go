package statistics

import (
	"github.com/markusressel/ecthermal/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	controllers []*controller.FanController

	level       *prometheus.Desc
	percent     *prometheus.Desc
	autoControl *prometheus.Desc
}

func NewControllerCollector(controllers []*controller.FanController) *ControllerCollector {
	labels := []string{"id", "strategy"}
	return &ControllerCollector{
		controllers: controllers,
		level: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "level"),
			"Current table level or zone of the fan strategy, -1 if there is none",
			labels, nil,
		),
		percent: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "percent"),
			"Current cooling demand computed by the fan strategy",
			labels, nil,
		),
		autoControl: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "auto_control"),
			"Whether the fan is under thermal control",
			labels, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.level
	ch <- collector.percent
	ch <- collector.autoControl
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	for _, contr := range collector.controllers {
		id := contr.GetFan().GetId()
		strategy := contr.GetStrategy().GetName()
		output := contr.GetStrategy().CurrentOutput()
		ch <- prometheus.MustNewConstMetric(collector.level, prometheus.GaugeValue, float64(output.Level), id, strategy)
		ch <- prometheus.MustNewConstMetric(collector.percent, prometheus.GaugeValue, float64(output.Percent), id, strategy)
		ch <- prometheus.MustNewConstMetric(collector.autoControl, prometheus.GaugeValue, boolToFloat(contr.IsAutoControl()), id, strategy)
	}
}
