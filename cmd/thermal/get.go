package thermal

import (
	"bytes"
	"github.com/markusressel/ecthermal/cmd/global"
	"github.com/markusressel/ecthermal/internal/thermal"
	"github.com/markusressel/ecthermal/internal/ui"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the thresholds of all sensors in Kelvin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		var configs []thermal.ThresholdConfig
		if err = c.Get("/thermal/", &configs); err != nil {
			return err
		}
		var sensorStates []thermal.SensorState
		if err = c.Get("/sensor/", &sensorStates); err != nil {
			return err
		}
		names := make([]string, len(sensorStates))
		for _, state := range sensorStates {
			if state.Index >= 0 && state.Index < len(names) {
				names[state.Index] = state.Name
			}
		}

		var buf bytes.Buffer
		if err = thermal.WriteThresholdTable(&buf, names, configs, !global.NoColor); err != nil {
			return err
		}
		ui.Printfln(buf.String())
		return nil
	},
}

func init() {
	Command.AddCommand(getCmd)
}
