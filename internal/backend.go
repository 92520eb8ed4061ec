package internal

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/ecthermal/internal/api"
	"github.com/markusressel/ecthermal/internal/chipset"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/controller"
	"github.com/markusressel/ecthermal/internal/curves"
	"github.com/markusressel/ecthermal/internal/events"
	"github.com/markusressel/ecthermal/internal/fans"
	"github.com/markusressel/ecthermal/internal/hwmon"
	"github.com/markusressel/ecthermal/internal/persistence"
	"github.com/markusressel/ecthermal/internal/sensors"
	"github.com/markusressel/ecthermal/internal/statistics"
	"github.com/markusressel/ecthermal/internal/thermal"
	"github.com/markusressel/ecthermal/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"net/http/pprof"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Daemon holds all objects of a running thermal control loop
type Daemon struct {
	Engine      *thermal.Engine
	Controllers *controller.Group
	Events      *events.Ring
	Sensors     []sensors.Sensor
	Fans        []fans.Fan

	// Persistence and journal are nil when no database is configured
	Persistence persistence.Persistence
	journal     *events.AsyncSink
}

func RunDaemon() {
	if getProcessOwner() != "root" {
		ui.Fatal("Thermal control requires root permissions to be able to modify fan speeds, please run ecthermal as root")
	}

	config := configuration.CurrentConfig
	daemon, err := InitializeObjects(config, hwmon.GetChips())
	if err != nil {
		ui.ErrorAndNotify("Initialization Error", "%v", err)
		os.Exit(1)
	}
	daemon.RegisterStatistics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	daemon.Controllers.Start(ctx)

	var g run.Group
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		port := config.Statistics.Port
		if port <= 0 || port >= 65535 {
			port = 9000
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addServer(&g, "statistics", &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux})
	}
	if config.Api.Enabled {
		// === REST api
		rest := api.CreateRestService(api.Dependencies{
			Engine:      daemon.Engine,
			Controllers: daemon.Controllers,
			Events:      daemon.Events,
			Persistence: daemon.Persistence,
			Registerer:  prometheus.DefaultRegisterer,
		})
		addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
		g.Add(func() error {
			ui.Info("Starting REST api on %s", addr)
			if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(err error) {
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeoutCancel()
			if err := rest.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping REST api: %v", err)
			}
		})
	}
	if config.Profiling.Enabled {
		// === pprof
		mux := http.NewServeMux()
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		addr := fmt.Sprintf("%s:%d", config.Profiling.Host, config.Profiling.Port)
		addServer(&g, "profiling", &http.Server{Addr: addr, Handler: mux})
	}
	if daemon.journal != nil {
		// === event journal
		journalCtx, journalCancel := context.WithCancel(ctx)
		g.Add(func() error {
			return daemon.journal.Run(journalCtx)
		}, func(err error) {
			journalCancel()
		})
	}
	{
		// === thermal engine
		tickRate := config.TickRate
		if tickRate <= 0 {
			tickRate = time.Second
		}
		engineCtx, engineCancel := context.WithCancel(ctx)
		g.Add(func() error {
			err := daemon.Engine.Run(engineCtx, tickRate)
			ui.Info("Thermal engine stopped.")
			return err
		}, func(err error) {
			engineCancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		done := make(chan struct{})
		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-done:
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			close(done)
		})
	}

	err = g.Run()

	// hand the fans back to their firmware or drive them at full speed
	daemon.Controllers.Restore(context.Background())

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ui.Info("Done.")
	os.Exit(0)
}

func addServer(g *run.Group, name string, server *http.Server) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ui.Error("Cannot start %s server (%s)", name, err.Error())
			return err
		}
		return nil
	}, func(err error) {
		ui.Info("Stopping %s server...", name)
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		}
	})
}

// InitializeObjects creates sensors, fans, strategies and the thermal
// engine from the given configuration.
func InitializeObjects(config configuration.Configuration, chips []*hwmon.Chip) (*Daemon, error) {
	chip, err := chipset.NewSystem(config.Chipset)
	if err != nil {
		return nil, err
	}
	return initializeWithChipset(config, chips, chip)
}

func initializeWithChipset(config configuration.Configuration, chips []*hwmon.Chip, chip chipset.Chipset) (*Daemon, error) {
	sensorList, err := sensors.NewSensors(config.Sensors, chips, chip)
	if err != nil {
		return nil, err
	}
	for _, sensor := range sensorList {
		sensors.SensorMap.Set(sensor.GetId(), sensor)
	}
	source := &sensors.Source{Sensors: sensorList}

	daemon := &Daemon{
		Sensors: sensorList,
		Events:  events.NewRing(config.EventBufferSize),
	}

	var sink events.Sink = daemon.Events
	if len(config.DbPath) > 0 {
		pers := persistence.NewPersistence(config.DbPath)
		if err := pers.Init(); err != nil {
			ui.Warning("Event journal disabled: %v", err)
		} else {
			daemon.Persistence = pers
			daemon.journal = events.NewAsyncSink(pers, config.EventBufferSize)
			sink = events.Multi{daemon.Events, daemon.journal}
		}
	}

	store := thermal.NewConfigStoreFromSensors(config.Sensors)
	daemon.Engine = thermal.NewEngine(source, store, chip, chipset.NewThrottler(chip), sink, source.Names())

	var controllers []*controller.FanController
	for _, fanConfig := range config.Fans {
		fan, err := fans.NewFan(fanConfig, chips)
		if err != nil {
			return nil, err
		}
		strategy, err := curves.NewStrategy(fanConfig, config.Tables, config.Sensors)
		if err != nil {
			return nil, err
		}
		fans.FanMap.Set(fanConfig.ID, fan)
		daemon.Fans = append(daemon.Fans, fan)
		controllers = append(controllers, controller.NewFanController(fan, strategy, chip))
	}
	daemon.Controllers = controller.NewGroup(controllers...)
	daemon.Engine.SetFanControl(daemon.Controllers)

	return daemon, nil
}

// RegisterStatistics registers all collectors with the default prometheus registry
func (d *Daemon) RegisterStatistics() {
	statistics.Register(statistics.NewSensorCollector(d.Engine))
	statistics.Register(statistics.NewThermalCollector(d.Engine))
	statistics.Register(statistics.NewFanCollector(d.Fans))
	statistics.Register(statistics.NewControllerCollector(d.Controllers.Controllers()))
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Fatal("Error checking process owner: %v", err)
		os.Exit(1)
	}
	return strings.TrimSpace(string(stdout))
}
