package sensor

import (
	"bytes"
	"context"
	"fmt"
	"github.com/markusressel/ecthermal/cmd/global"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/hwmon"
	"github.com/markusressel/ecthermal/internal/sensors"
	"github.com/markusressel/ecthermal/internal/ui"
	"github.com/markusressel/ecthermal/internal/util"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"strconv"
)

var sensorId string

var Command = &cobra.Command{
	Use:   "sensor",
	Short: "Print the current temperature of the configured sensors",
	Long: `Prints all configured sensors with their current temperature.
With --id only the temperature of that sensor is printed, in Kelvin.`,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(sensorId) > 0 {
			pterm.DisableOutput()
		}

		global.ReadValidConfig()
		// power domains are ignored, the chipset state is only known to the daemon
		sensorList, err := sensors.NewSensors(configuration.CurrentConfig.Sensors, hwmon.GetChips(), nil)
		if err != nil {
			return err
		}

		ctx := context.Background()
		if len(sensorId) > 0 {
			return printSingle(ctx, sensorList, sensorId)
		}
		return printAll(ctx, sensorList)
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
}

func printSingle(ctx context.Context, sensorList []sensors.Sensor, id string) error {
	var available []string
	for _, sensor := range sensorList {
		available = append(available, sensor.GetId())
		if sensor.GetId() != id {
			continue
		}
		kelvin, err := sensors.ReadKelvin(ctx, sensor)
		if err != nil {
			return err
		}
		fmt.Printf("%d", kelvin)
		return nil
	}
	return fmt.Errorf("no sensor with id found: %s, options: %s", id, available)
}

func printAll(ctx context.Context, sensorList []sensors.Sensor) error {
	var rows [][]string
	for i, sensor := range sensorList {
		value := "N/A"
		kelvin, err := sensors.ReadKelvin(ctx, sensor)
		if err != nil {
			ui.Debug("Unable to read sensor %s: %v", sensor.GetId(), err)
		} else {
			value = fmt.Sprintf("%dK (%d°C)", kelvin, util.KelvinToCelsius(kelvin))
		}
		rows = append(rows, []string{strconv.Itoa(i), sensor.GetId(), sensor.GetConfig().Kind, value})
	}

	tab := table.Table{
		Headers: []string{"Index", "ID", "Kind", "Value"},
		Rows:    rows,
	}
	var buf bytes.Buffer
	if err := tab.WriteTable(&buf, global.TableConfig()); err != nil {
		return err
	}
	ui.Printfln(buf.String())
	return nil
}
