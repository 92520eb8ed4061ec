package fan

import (
	"fmt"
	"github.com/markusressel/ecthermal/internal/api"
	"github.com/spf13/cobra"
	"strconv"
)

var autoCmd = &cobra.Command{
	Use:   "auto [on|off]",
	Short: "Enable or disable thermal control of a fan",
	Long: `Hands a fan back to thermal control, or takes it away with "off".
Setting the RPM of a fan manually disables thermal control as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled := true
		if len(args) > 0 {
			value, err := parseOnOff(args[0])
			if err != nil {
				return err
			}
			enabled = value
		}

		c, err := newClient()
		if err != nil {
			return err
		}

		var state api.FanState
		if err = c.Post(fanPath(fanId)+"auto/", api.AutoControlRequest{Enabled: enabled}, &state); err != nil {
			return err
		}
		printState(state)
		return nil
	},
}

func parseOnOff(text string) (bool, error) {
	switch text {
	case "on", "enable":
		return true, nil
	case "off", "disable":
		return false, nil
	}
	value, err := strconv.ParseBool(text)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got '%s'", text)
	}
	return value, nil
}

func init() {
	Command.AddCommand(autoCmd)
}
