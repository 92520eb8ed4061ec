package thermal

import (
	"context"
	"errors"
	"fmt"
	"github.com/markusressel/ecthermal/internal/chipset"
	"github.com/markusressel/ecthermal/internal/curves"
	"github.com/markusressel/ecthermal/internal/events"
	"github.com/markusressel/ecthermal/internal/sensors"
	"github.com/markusressel/ecthermal/internal/ui"
	"sync"
	"sync/atomic"
	"time"
)

// TemperatureSource provides the readings of all sensors by global index
type TemperatureSource interface {
	Count() int
	// ReadKelvin returns the current temperature of the sensor in Kelvin
	ReadKelvin(ctx context.Context, index int) (int, error)
}

// FanControl receives the sensor snapshot of every tick with at least one
// valid reading.
type FanControl interface {
	Update(ctx context.Context, snapshot curves.Snapshot)
}

type SensorStatus string

const (
	SensorStatusOk         SensorStatus = "ok"
	SensorStatusNotPowered SensorStatus = "not powered"
	SensorStatusError      SensorStatus = "error"
	SensorStatusUnknown    SensorStatus = "unknown"
)

// SensorState is the diagnostic view of a single sensor
type SensorState struct {
	Index  int          `json:"index"`
	Name   string       `json:"name"`
	Status SensorStatus `json:"status"`
	// Kelvin is the last known reading, 0 if the sensor was never read
	Kelvin  int `json:"kelvin"`
	Percent int `json:"percent"`
}

// Status is the state of the engine after the last tick
type Status struct {
	Time         time.Time       `json:"time"`
	ValidSensors int             `json:"validSensors"`
	FailedReads  uint64          `json:"failedReads"`
	Latches      map[string]bool `json:"latches"`
	Throttle     map[string]bool `json:"throttle"`
	Sensors      []SensorState   `json:"sensors"`
	MaxPercent   int             `json:"maxPercent"`
}

// Engine evaluates the thresholds of all sensors once per tick and drives
// shutdown, throttling and fan control.
type Engine struct {
	source    TemperatureSource
	store     *ConfigStore
	chipset   chipset.Chipset
	throttler *chipset.Throttler
	sink      events.Sink
	fans      FanControl
	names     []string

	latches       [ThresholdCount]Latch
	failedReads   atomic.Uint64
	failureStreak int

	mu     sync.RWMutex
	status Status
	sensor []SensorState
}

func NewEngine(
	source TemperatureSource,
	store *ConfigStore,
	chip chipset.Chipset,
	throttler *chipset.Throttler,
	sink events.Sink,
	names []string,
) *Engine {
	e := &Engine{
		source:    source,
		store:     store,
		chipset:   chip,
		throttler: throttler,
		sink:      sink,
		names:     names,
	}
	e.sensor = make([]SensorState, source.Count())
	for i := range e.sensor {
		e.sensor[i] = SensorState{Index: i, Name: e.sensorName(i), Status: SensorStatusUnknown, Percent: curves.NoValue}
	}
	e.status = e.buildStatus(time.Now(), 0, 0)
	return e
}

// SetFanControl installs the receiver of the per tick sensor snapshot
func (e *Engine) SetFanControl(fans FanControl) {
	e.fans = fans
}

// Run ticks the engine at the given rate until the context is cancelled
func (e *Engine) Run(ctx context.Context, tickRate time.Duration) error {
	ui.Info("Starting thermal engine with %d sensors, tick rate %s", e.source.Count(), tickRate)
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.Tick(ctx)
		}
	}
}

// Tick reads every sensor once, updates the threshold latches and acts on
// their transitions. All readings are accounted before any action is taken.
func (e *Engine) Tick(ctx context.Context) {
	if err := e.chipset.Poll(ctx); err != nil {
		ui.Warning("Unable to read chipset state: %v", err)
	}

	configs := e.store.Snapshot()
	count := e.source.Count()

	snapshot := curves.Snapshot{
		Temps:    make([]int, count),
		Valid:    make([]bool, count),
		Percents: make([]int, count),
	}

	var over, under, limited [ThresholdCount]int
	firstOver := [ThresholdCount]int{events.NoSensor, events.NoSensor, events.NoSensor}
	numValid := 0

	for i := 0; i < count; i++ {
		snapshot.Percents[i] = curves.NoValue

		temp, err := e.source.ReadKelvin(ctx, i)
		if err != nil {
			e.failedReads.Add(1)
			e.recordFault(i, err)
			continue
		}
		numValid++
		snapshot.Temps[i] = temp
		snapshot.Valid[i] = true

		if i >= len(configs) {
			e.recordReading(i, temp, curves.NoValue)
			continue
		}
		cfg := configs[i]

		for _, kind := range ThresholdKinds {
			limit := cfg.TempHost[kind]
			if limit == 0 {
				continue
			}
			limited[kind]++
			if temp > limit {
				over[kind]++
				if firstOver[kind] == events.NoSensor {
					firstOver[kind] = i
				}
			} else if temp < cfg.Release(kind) {
				under[kind]++
			}
		}

		if cfg.HasFanRange() {
			percent := FanPercent(cfg.TempFanOff, cfg.TempFanMax, temp)
			snapshot.Percents[i] = percent
			if percent > snapshot.MaxPercent {
				snapshot.MaxPercent = percent
			}
		}
		e.recordReading(i, temp, snapshot.Percents[i])
	}

	now := time.Now()
	if numValid == 0 {
		e.sensorFailure(now)
		e.publishStatus(now, 0, 0)
		return
	}
	e.failureStreak = 0

	for _, kind := range ThresholdKinds {
		if over[kind] > 0 {
			e.latches[kind].Set(true)
		} else if limited[kind] > 0 && under[kind] == limited[kind] {
			e.latches[kind].Set(false)
		}
	}

	e.actOnLatches(ctx, now, firstOver)
	e.publishStatus(now, numValid, snapshot.MaxPercent)

	if e.fans != nil {
		e.fans.Update(ctx, snapshot)
	}
}

func (e *Engine) sensorFailure(now time.Time) {
	if e.chipset.InState(chipset.StateHardOff) {
		return
	}
	e.failureStreak++
	message := "All thermal sensors failed, fan control and thresholds are inactive"
	if e.failureStreak == 1 {
		ui.WarningAndNotify("Thermal sensors failed", message)
	} else {
		ui.Warning(message)
	}
	e.publish(events.Event{
		Time:    now,
		Type:    events.TypeSensorFailure,
		Active:  true,
		Sensor:  events.NoSensor,
		Message: message,
	})
}

func (e *Engine) actOnLatches(ctx context.Context, now time.Time, firstOver [ThresholdCount]int) {
	halt := &e.latches[ThresholdHalt]
	if halt.WentTrue() {
		ui.Error("thermal SHUTDOWN")
		e.publish(events.Event{
			Time:      now,
			Type:      events.TypeThermalShutdown,
			Threshold: ThresholdHalt.String(),
			Active:    true,
			Sensor:    firstOver[ThresholdHalt],
			Message:   fmt.Sprintf("sensor %s exceeded its halt limit", e.sensorName(firstOver[ThresholdHalt])),
		})
		e.chipset.ForceShutdown(ctx, chipset.ShutdownThermal)
	} else if halt.WentFalse() {
		ui.Info("thermal no longer shutdown")
		e.publish(events.Event{
			Time:      now,
			Type:      events.TypeThermalShutdown,
			Threshold: ThresholdHalt.String(),
			Active:    false,
			Sensor:    events.NoSensor,
			Message:   "all sensors below their halt release",
		})
	}

	e.throttleEdge(ctx, now, ThresholdHigh, chipset.ThrottleHard, firstOver)
	e.throttleEdge(ctx, now, ThresholdWarn, chipset.ThrottleSoft, firstOver)
}

func (e *Engine) throttleEdge(
	ctx context.Context,
	now time.Time,
	kind ThresholdKind,
	throttleType chipset.ThrottleType,
	firstOver [ThresholdCount]int,
) {
	latch := &e.latches[kind]
	if latch.WentTrue() {
		ui.Warning("thermal %s", kind)
		e.throttler.Throttle(ctx, true, throttleType, chipset.SourceThermal)
		e.publish(events.Event{
			Time:      now,
			Type:      events.TypeThermalThreshold,
			Threshold: kind.String(),
			Active:    true,
			Sensor:    firstOver[kind],
			Message:   fmt.Sprintf("sensor %s exceeded its %s limit", e.sensorName(firstOver[kind]), kind),
		})
	} else if latch.WentFalse() {
		ui.Info("thermal no longer %s", kind)
		e.throttler.Throttle(ctx, false, throttleType, chipset.SourceThermal)
		e.publish(events.Event{
			Time:      now,
			Type:      events.TypeThermalThreshold,
			Threshold: kind.String(),
			Active:    false,
			Sensor:    events.NoSensor,
			Message:   fmt.Sprintf("all sensors below their %s release", kind),
		})
	}
}

func (e *Engine) publish(event events.Event) {
	if e.sink != nil {
		e.sink.Publish(event)
	}
}

func (e *Engine) recordReading(index int, kelvin int, percent int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index >= len(e.sensor) {
		return
	}
	e.sensor[index].Status = SensorStatusOk
	e.sensor[index].Kelvin = kelvin
	e.sensor[index].Percent = percent
}

func (e *Engine) recordFault(index int, err error) {
	status := SensorStatusError
	if errors.Is(err, sensors.ErrNotPowered) {
		status = SensorStatusNotPowered
	} else {
		ui.Debug("Unable to read sensor %s: %v", e.sensorName(index), err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if index >= len(e.sensor) {
		return
	}
	e.sensor[index].Status = status
	e.sensor[index].Percent = curves.NoValue
}

func (e *Engine) publishStatus(now time.Time, numValid int, maxPercent int) {
	status := e.buildStatus(now, numValid, maxPercent)
	e.mu.Lock()
	defer e.mu.Unlock()
	status.Sensors = append([]SensorState{}, e.sensor...)
	e.status = status
}

func (e *Engine) buildStatus(now time.Time, numValid int, maxPercent int) Status {
	latches := map[string]bool{}
	for _, kind := range ThresholdKinds {
		latches[kind.String()] = e.latches[kind].Is()
	}
	throttle := map[string]bool{}
	if e.throttler != nil {
		throttle[chipset.ThrottleSoft.String()] = e.throttler.Requests(chipset.ThrottleSoft) != 0
		throttle[chipset.ThrottleHard.String()] = e.throttler.Requests(chipset.ThrottleHard) != 0
	}
	return Status{
		Time:         now,
		ValidSensors: numValid,
		FailedReads:  e.failedReads.Load(),
		Latches:      latches,
		Throttle:     throttle,
		MaxPercent:   maxPercent,
	}
}

// Status returns the state of the engine after the last tick
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	status := e.status
	status.Sensors = append([]SensorState{}, e.status.Sensors...)
	return status
}

// Latch reports the current value of the given threshold condition
func (e *Engine) Latch(kind ThresholdKind) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status.Latches[kind.String()]
}

// FailedReads returns the number of failed sensor reads since start
func (e *Engine) FailedReads() uint64 {
	return e.failedReads.Load()
}

func (e *Engine) Store() *ConfigStore {
	return e.store
}

func (e *Engine) Throttler() *chipset.Throttler {
	return e.throttler
}

func (e *Engine) sensorName(index int) string {
	if index >= 0 && index < len(e.names) && len(e.names[index]) > 0 {
		return e.names[index]
	}
	return fmt.Sprintf("#%d", index)
}
