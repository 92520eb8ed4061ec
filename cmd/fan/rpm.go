package fan

import (
	"fmt"
	"github.com/markusressel/ecthermal/internal/api"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"strconv"
)

var rpmCmd = &cobra.Command{
	Use:   "rpm [value]",
	Short: "Get the current RPM reading of a fan, or set its target RPM",
	Long: `Without a value the measured RPM of the fan is printed.
With a value thermal control of the fan is disabled and the target RPM
is set, use "fan auto" to hand the fan back.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) <= 0 {
			pterm.DisableOutput()
		}
		c, err := newClient()
		if err != nil {
			return err
		}

		var state api.FanState
		if len(args) <= 0 {
			if err = c.Get(fanPath(fanId), &state); err != nil {
				return err
			}
			fmt.Printf("%d", state.RpmActual)
			return nil
		}

		rpm, err := strconv.Atoi(args[0])
		if err != nil || rpm < 0 {
			return fmt.Errorf("invalid rpm '%s'", args[0])
		}
		if err = c.Post(fanPath(fanId)+"rpm/", api.RpmRequest{Rpm: rpm}, &state); err != nil {
			return err
		}
		printState(state)
		return nil
	},
}

func init() {
	Command.AddCommand(rpmCmd)
}
