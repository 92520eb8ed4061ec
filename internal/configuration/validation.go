package configuration

import (
	"errors"
	"fmt"
	"github.com/looplab/tarjan"
	"github.com/markusressel/ecthermal/internal/ui"
	"github.com/markusressel/ecthermal/internal/util"
	"golang.org/x/exp/slices"
	"strings"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateChipset(config)
	if err != nil {
		return err
	}
	err = validateSensors(config)
	if err != nil {
		return err
	}
	err = validateTables(config)
	if err != nil {
		return err
	}
	err = validateFans(config)
	if err != nil {
		return err
	}

	if containsCmdSources(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return errors.New(fmt.Sprintf("config file '%s' has invalid permissions: %s", path, err))
		}
	}

	return nil
}

func containsCmdSources(config *Configuration) bool {
	for _, sensorConfig := range config.Sensors {
		if sensorConfig.Cmd != nil {
			return true
		}
	}
	for _, fanConfig := range config.Fans {
		if fanConfig.Cmd != nil {
			return true
		}
		if table := fanConfig.Control.Table; table != nil && table.ModeSource != nil && table.ModeSource.Cmd != nil {
			return true
		}
	}
	chipset := config.Chipset
	return chipset.State.Cmd != nil || chipset.Shutdown != nil || chipset.Throttle != nil || chipset.HostThrottle != nil
}

func validateChipset(config *Configuration) error {
	state := config.Chipset.State
	if err := validateValueSource("chipset state", &state); err != nil {
		return err
	}
	if len(state.Static) > 0 && !slices.Contains(ChipsetStates, state.Static) {
		return errors.New(fmt.Sprintf("chipset: unsupported state '%s', use one of: %s", state.Static, strings.Join(ChipsetStates, " | ")))
	}

	commands := map[string]*CmdSourceConfig{
		"shutdown":     config.Chipset.Shutdown,
		"throttle":     config.Chipset.Throttle,
		"hostThrottle": config.Chipset.HostThrottle,
	}
	for _, name := range util.SortedKeys(commands) {
		if cmd := commands[name]; cmd != nil && len(cmd.Exec) <= 0 {
			return errors.New(fmt.Sprintf("chipset: %s executable is missing", name))
		}
	}

	return nil
}

func validateValueSource(name string, source *ValueSourceConfig) error {
	subConfigs := source.subConfigCount()
	if subConfigs > 1 {
		return errors.New(fmt.Sprintf("%s: only one source type can be used, use one of: static | file | cmd", name))
	}
	if subConfigs <= 0 {
		return errors.New(fmt.Sprintf("%s: source is missing, use one of: static | file | cmd", name))
	}
	if source.File != nil && len(source.File.Path) <= 0 {
		return errors.New(fmt.Sprintf("%s: no file path provided", name))
	}
	if source.Cmd != nil && len(source.Cmd.Exec) <= 0 {
		return errors.New(fmt.Sprintf("%s: executable is missing", name))
	}
	return nil
}

func validateSensors(config *Configuration) error {
	graph := make(map[interface{}][]interface{})
	var ids []string

	for _, sensorConfig := range config.Sensors {
		if len(sensorConfig.ID) <= 0 {
			return errors.New("sensor id must not be empty")
		}
		if slices.Contains(ids, sensorConfig.ID) {
			return errors.New(fmt.Sprintf("duplicate sensor id detected: %s", sensorConfig.ID))
		}
		ids = append(ids, sensorConfig.ID)

		subConfigs := 0
		if sensorConfig.HwMon != nil {
			subConfigs++
		}
		if sensorConfig.File != nil {
			subConfigs++
		}
		if sensorConfig.Cmd != nil {
			subConfigs++
		}
		if sensorConfig.Host != nil {
			subConfigs++
		}
		if sensorConfig.Composite != nil {
			subConfigs++
		}
		if sensorConfig.Virtual != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return errors.New(fmt.Sprintf("sensor %s: only one sensor type can be used per sensor definition block", sensorConfig.ID))
		}
		if subConfigs <= 0 {
			return errors.New(fmt.Sprintf("sensor %s: sub-configuration for sensor is missing, use one of: hwmon | file | cmd | host | composite | virtual", sensorConfig.ID))
		}

		if len(sensorConfig.Kind) > 0 && !slices.Contains(SensorKinds, sensorConfig.Kind) {
			return errors.New(fmt.Sprintf("sensor %s: unsupported kind '%s', use one of: %s", sensorConfig.ID, sensorConfig.Kind, strings.Join(SensorKinds, " | ")))
		}

		for _, state := range sensorConfig.PoweredIn {
			if !slices.Contains(ChipsetStates, state) {
				return errors.New(fmt.Sprintf("sensor %s: unsupported chipset state '%s', use one of: %s", sensorConfig.ID, state, strings.Join(ChipsetStates, " | ")))
			}
		}

		if !isSensorConfigInUse(sensorConfig, config) {
			ui.Warning("Sensor %s has no thresholds and is not used by any fan", sensorConfig.ID)
		}

		if sensorConfig.HwMon != nil {
			if sensorConfig.HwMon.Index <= 0 {
				return errors.New(fmt.Sprintf("sensor %s: invalid index, must be >= 1", sensorConfig.ID))
			}
		}

		if sensorConfig.File != nil && len(sensorConfig.File.Path) <= 0 {
			return errors.New(fmt.Sprintf("sensor %s: no file path provided", sensorConfig.ID))
		}

		if sensorConfig.Cmd != nil && len(sensorConfig.Cmd.Exec) <= 0 {
			return errors.New(fmt.Sprintf("sensor %s: executable is missing", sensorConfig.ID))
		}

		if sensorConfig.Host != nil && len(sensorConfig.Host.Key) <= 0 {
			return errors.New(fmt.Sprintf("sensor %s: host sensor key is missing", sensorConfig.ID))
		}

		if sensorConfig.Composite != nil {
			composite := sensorConfig.Composite
			supportedFunctions := []string{CompositeMaximum, CompositeMinimum, CompositeAverage}
			if !slices.Contains(supportedFunctions, composite.Function) {
				return errors.New(fmt.Sprintf("sensor %s: unsupported composite function '%s', use one of: %s", sensorConfig.ID, composite.Function, strings.Join(supportedFunctions, " | ")))
			}
			if len(composite.Sensors) <= 0 {
				return errors.New(fmt.Sprintf("sensor %s: composite sensor without sensors", sensorConfig.ID))
			}

			var connections []interface{}
			for _, sensor := range composite.Sensors {
				if sensor == sensorConfig.ID {
					return errors.New(fmt.Sprintf("sensor %s: a sensor cannot reference itself", sensorConfig.ID))
				}
				if !sensorIdExists(sensor, config) {
					return errors.New(fmt.Sprintf("sensor %s: no sensor definition with id '%s' found", sensorConfig.ID, sensor))
				}
				connections = append(connections, sensor)
			}
			graph[sensorConfig.ID] = connections
		}

		if err := validateThresholds(sensorConfig.ID, sensorConfig.Thresholds); err != nil {
			return err
		}
	}

	return validateNoLoops(graph)
}

func validateThresholds(sensorId string, thresholds ThresholdsConfig) error {
	pairs := []struct {
		name    string
		trigger Temperature
		release Temperature
	}{
		{"warn", thresholds.Warn, thresholds.WarnRelease},
		{"high", thresholds.High, thresholds.HighRelease},
		{"halt", thresholds.Halt, thresholds.HaltRelease},
	}
	for _, pair := range pairs {
		if pair.trigger < 0 || pair.release < 0 {
			return errors.New(fmt.Sprintf("sensor %s: %s threshold must not be negative", sensorId, pair.name))
		}
		if !pair.release.IsSet() {
			continue
		}
		if !pair.trigger.IsSet() {
			return errors.New(fmt.Sprintf("sensor %s: %s release is set but %s threshold is disabled", sensorId, pair.name, pair.name))
		}
		if pair.release >= pair.trigger {
			return errors.New(fmt.Sprintf("sensor %s: %s release (%d) must be below %s threshold (%d)", sensorId, pair.name, pair.release, pair.name, pair.trigger))
		}
	}

	if thresholds.FanOff.IsSet() != thresholds.FanMax.IsSet() {
		return errors.New(fmt.Sprintf("sensor %s: fanOff and fanMax must be set together", sensorId))
	}
	if thresholds.FanOff.IsSet() && thresholds.FanOff >= thresholds.FanMax {
		return errors.New(fmt.Sprintf("sensor %s: fanOff (%d) must be below fanMax (%d)", sensorId, thresholds.FanOff, thresholds.FanMax))
	}

	return nil
}

func isSensorConfigInUse(sensorConfig SensorConfig, config *Configuration) bool {
	thresholds := sensorConfig.Thresholds
	if thresholds.Warn.IsSet() || thresholds.High.IsSet() || thresholds.Halt.IsSet() || thresholds.FanMax.IsSet() {
		return true
	}
	for _, other := range config.Sensors {
		if other.Composite != nil && slices.Contains(other.Composite.Sensors, sensorConfig.ID) {
			return true
		}
	}
	for _, table := range config.Tables {
		if slices.Contains(table.Sensors, sensorConfig.ID) {
			return true
		}
	}
	for _, fan := range config.Fans {
		for _, zone := range fan.Control.Zones {
			if slices.Contains(zone.Sensors, sensorConfig.ID) {
				return true
			}
		}
	}
	return false
}

func sensorIdExists(sensorId string, config *Configuration) bool {
	for _, sensor := range config.Sensors {
		if sensor.ID == sensorId {
			return true
		}
	}

	return false
}

func validateNoLoops(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return errors.New(fmt.Sprintf("you have created a sensor dependency cycle: %v", items))
		}
	}
	return nil
}

func validateTables(config *Configuration) error {
	var ids []string

	for _, tableConfig := range config.Tables {
		if len(tableConfig.ID) <= 0 {
			return errors.New("table id must not be empty")
		}
		if slices.Contains(ids, tableConfig.ID) {
			return errors.New(fmt.Sprintf("duplicate table id detected: %s", tableConfig.ID))
		}
		ids = append(ids, tableConfig.ID)

		if len(tableConfig.Unit) > 0 && tableConfig.Unit != UnitCelsius && tableConfig.Unit != UnitKelvin {
			return errors.New(fmt.Sprintf("table %s: unsupported unit '%s', use one of: %s | %s", tableConfig.ID, tableConfig.Unit, UnitCelsius, UnitKelvin))
		}
		if len(tableConfig.Direction) > 0 && tableConfig.Direction != DirectionAny && tableConfig.Direction != DirectionAll {
			return errors.New(fmt.Sprintf("table %s: unsupported direction '%s', use one of: %s | %s", tableConfig.ID, tableConfig.Direction, DirectionAny, DirectionAll))
		}

		if len(tableConfig.Sensors) <= 0 {
			return errors.New(fmt.Sprintf("table %s: no sensors defined", tableConfig.ID))
		}
		for _, sensor := range tableConfig.Sensors {
			if !sensorIdExists(sensor, config) {
				return errors.New(fmt.Sprintf("table %s: no sensor definition with id '%s' found", tableConfig.ID, sensor))
			}
		}

		for _, group := range tableConfig.Rising {
			if len(group) <= 0 {
				return errors.New(fmt.Sprintf("table %s: empty rising group", tableConfig.ID))
			}
			for _, sensor := range group {
				if !slices.Contains(tableConfig.Sensors, sensor) {
					return errors.New(fmt.Sprintf("table %s: rising group references sensor '%s' which is not part of the table", tableConfig.ID, sensor))
				}
			}
		}

		if tableConfig.Debounce < 0 {
			return errors.New(fmt.Sprintf("table %s: debounce must be >= 0", tableConfig.ID))
		}

		if filter := tableConfig.Filter; filter != nil {
			if !slices.Contains(tableConfig.Sensors, filter.Sensor) {
				return errors.New(fmt.Sprintf("table %s: filter references sensor '%s' which is not part of the table", tableConfig.ID, filter.Sensor))
			}
			if filter.Window <= 0 {
				return errors.New(fmt.Sprintf("table %s: filter window must be >= 1", tableConfig.ID))
			}
		}

		if len(tableConfig.Levels) <= 0 {
			return errors.New(fmt.Sprintf("table %s: no levels defined", tableConfig.ID))
		}
		for i, level := range tableConfig.Levels {
			if len(level.On) != len(tableConfig.Sensors) || len(level.Off) != len(tableConfig.Sensors) {
				return errors.New(fmt.Sprintf("table %s: level %d must define exactly one on and off value per sensor", tableConfig.ID, i))
			}
			if len(level.Rpm) <= 0 {
				return errors.New(fmt.Sprintf("table %s: level %d has no rpm values", tableConfig.ID, i))
			}
			for s := range tableConfig.Sensors {
				on := level.On[s]
				off := level.Off[s]
				if on == UnusedThreshold || off == UnusedThreshold {
					continue
				}
				if on < off {
					return errors.New(fmt.Sprintf("table %s: level %d sensor %s has on (%d) below off (%d)", tableConfig.ID, i, tableConfig.Sensors[s], on, off))
				}
			}
		}
	}

	return nil
}

func tableById(tableId string, config *Configuration) *TableConfig {
	for i := range config.Tables {
		if config.Tables[i].ID == tableId {
			return &config.Tables[i]
		}
	}
	return nil
}

func validateFans(config *Configuration) error {
	var ids []string

	for _, fanConfig := range config.Fans {
		if len(fanConfig.ID) <= 0 {
			return errors.New("fan id must not be empty")
		}
		if slices.Contains(ids, fanConfig.ID) {
			return errors.New(fmt.Sprintf("duplicate fan id detected: %s", fanConfig.ID))
		}
		ids = append(ids, fanConfig.ID)

		subConfigs := 0
		if fanConfig.HwMon != nil {
			subConfigs++
		}
		if fanConfig.File != nil {
			subConfigs++
		}
		if fanConfig.Cmd != nil {
			subConfigs++
		}
		if fanConfig.Virtual != nil {
			subConfigs++
		}

		if subConfigs > 1 {
			return errors.New(fmt.Sprintf("fan %s: only one fan type can be used per fan definition block", fanConfig.ID))
		}
		if subConfigs <= 0 {
			return errors.New(fmt.Sprintf("fan %s: sub-configuration for fan is missing, use one of: hwmon | file | cmd | virtual", fanConfig.ID))
		}

		if fanConfig.HwMon != nil {
			if fanConfig.HwMon.Index <= 0 {
				return errors.New(fmt.Sprintf("fan %s: invalid index, must be >= 1", fanConfig.ID))
			}
		}

		if fanConfig.File != nil {
			if len(fanConfig.File.Path) <= 0 {
				return errors.New(fmt.Sprintf("fan %s: no file path provided", fanConfig.ID))
			}
		}

		if fanConfig.Cmd != nil {
			cmdConfig := fanConfig.Cmd
			if cmdConfig.SetRpm == nil {
				return errors.New(fmt.Sprintf("fan %s: missing setRpm configuration", fanConfig.ID))
			}
			if len(cmdConfig.SetRpm.Exec) <= 0 {
				return errors.New(fmt.Sprintf("fan %s: setRpm executable is missing", fanConfig.ID))
			}
			if cmdConfig.GetRpm != nil && len(cmdConfig.GetRpm.Exec) <= 0 {
				return errors.New(fmt.Sprintf("fan %s: getRpm executable is missing", fanConfig.ID))
			}
		}

		if fanConfig.RpmMin < 0 || fanConfig.RpmMax <= 0 || fanConfig.RpmMin > fanConfig.RpmMax {
			return errors.New(fmt.Sprintf("fan %s: invalid rpm range, requires 0 <= rpmMin <= rpmMax and rpmMax > 0", fanConfig.ID))
		}
		if fanConfig.RpmStart > fanConfig.RpmMax {
			return errors.New(fmt.Sprintf("fan %s: rpmStart must not exceed rpmMax", fanConfig.ID))
		}

		if err := validateFanControl(fanConfig, config); err != nil {
			return err
		}
	}

	return nil
}

func validateFanControl(fanConfig FanConfig, config *Configuration) error {
	control := fanConfig.Control
	strategy := control.Strategy
	if len(strategy) <= 0 {
		strategy = StrategyRamp
	}

	switch strategy {
	case StrategyRamp:
		return nil
	case StrategyTable:
		return validateTableSelection(fanConfig, config)
	case StrategyZones:
		return validateZones(fanConfig, config)
	default:
		return errors.New(fmt.Sprintf("fan %s: unsupported strategy '%s', use one of: %s", fanConfig.ID, control.Strategy, strings.Join(Strategies, " | ")))
	}
}

func validateTableSelection(fanConfig FanConfig, config *Configuration) error {
	selection := fanConfig.Control.Table
	if selection == nil {
		return errors.New(fmt.Sprintf("fan %s: strategy '%s' requires a table configuration", fanConfig.ID, StrategyTable))
	}

	tableIds := []string{selection.Default}
	for _, mode := range util.SortedKeys(selection.Modes) {
		tableIds = append(tableIds, selection.Modes[mode])
	}

	var first *TableConfig
	for _, tableId := range tableIds {
		table := tableById(tableId, config)
		if table == nil {
			return errors.New(fmt.Sprintf("fan %s: no table definition with id '%s' found", fanConfig.ID, tableId))
		}
		if first == nil {
			first = table
		}
		if len(table.Levels) != len(first.Levels) {
			return errors.New(fmt.Sprintf("fan %s: all selectable tables must have the same number of levels", fanConfig.ID))
		}
		if !slices.Equal(table.Sensors, first.Sensors) {
			return errors.New(fmt.Sprintf("fan %s: all selectable tables must use the same sensors", fanConfig.ID))
		}

		for i, level := range table.Levels {
			if selection.Column < 0 || selection.Column >= len(level.Rpm) {
				return errors.New(fmt.Sprintf("fan %s: table %s level %d has no rpm value for column %d", fanConfig.ID, tableId, i, selection.Column))
			}
		}
	}

	if len(selection.Modes) > 0 {
		if selection.ModeSource == nil {
			return errors.New(fmt.Sprintf("fan %s: table modes require a modeSource", fanConfig.ID))
		}
		if err := validateValueSource(fmt.Sprintf("fan %s modeSource", fanConfig.ID), selection.ModeSource); err != nil {
			return err
		}
	}

	return nil
}

func validateZones(fanConfig FanConfig, config *Configuration) error {
	zones := fanConfig.Control.Zones
	if len(zones) <= 0 {
		return errors.New(fmt.Sprintf("fan %s: strategy '%s' requires at least one zone", fanConfig.ID, StrategyZones))
	}
	for i, zone := range zones {
		if len(zone.Kind) > 0 && !slices.Contains(SensorKinds, zone.Kind) {
			return errors.New(fmt.Sprintf("fan %s: zone %d has unsupported kind '%s'", fanConfig.ID, i, zone.Kind))
		}
		if len(zone.Sensors) <= 0 {
			return errors.New(fmt.Sprintf("fan %s: zone %d has no sensors", fanConfig.ID, i))
		}
		for _, sensor := range zone.Sensors {
			if !sensorIdExists(sensor, config) {
				return errors.New(fmt.Sprintf("fan %s: zone %d references unknown sensor '%s'", fanConfig.ID, i, sensor))
			}
		}
		if len(zone.Steps) <= 0 {
			return errors.New(fmt.Sprintf("fan %s: zone %d has no steps", fanConfig.ID, i))
		}
		for percent := range zone.Steps {
			if percent < 0 || percent > 100 {
				return errors.New(fmt.Sprintf("fan %s: zone %d step %d is not a percentage", fanConfig.ID, i, percent))
			}
		}
	}
	return nil
}
