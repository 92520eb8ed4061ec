package thermal

import (
	"fmt"
	"github.com/markusressel/ecthermal/internal/api"
	"github.com/markusressel/ecthermal/internal/thermal"
	"github.com/markusressel/ecthermal/internal/ui"
	"github.com/spf13/cobra"
	"strconv"
)

var setCmd = &cobra.Command{
	Use:   "set <sensor> <warn> [high] [halt] [fan_off] [fan_max]",
	Short: "Change the thresholds of a single sensor",
	Long: `Changes the trigger limits and the fan range of a sensor.
Bare numbers are Kelvin, use a C suffix for Celsius. A value of "-"
leaves the respective setting unchanged, 0 disables it. -1 is accepted
as well when passed after a "--" separator.`,
	Args: cobra.RangeArgs(2, 6),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid sensor index '%s'", args[0])
		}
		values, err := thermal.ParseConsoleSetArgs(args[1:])
		if err != nil {
			return err
		}

		c, err := newClient()
		if err != nil {
			return err
		}

		var result thermal.ThresholdConfig
		request := api.ConsoleSetRequest{Values: values}
		if err = c.Post(sensorPath(index)+"console/", request, &result); err != nil {
			return err
		}
		ui.Success("Sensor %d: warn=%d high=%d halt=%d fan_off=%d fan_max=%d",
			index,
			result.TempHost[thermal.ThresholdWarn],
			result.TempHost[thermal.ThresholdHigh],
			result.TempHost[thermal.ThresholdHalt],
			result.TempFanOff,
			result.TempFanMax,
		)
		return nil
	},
}

func init() {
	Command.AddCommand(setCmd)
}
