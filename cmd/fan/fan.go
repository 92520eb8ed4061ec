package fan

import (
	"github.com/markusressel/ecthermal/cmd/client"
	"github.com/markusressel/ecthermal/internal/api"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/ui"
	"github.com/spf13/cobra"
)

var fanId string

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands of a running daemon",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&fanId,
		"id", "i",
		"",
		"Fan ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func newClient() (*client.Client, error) {
	configuration.ReadConfigFile()
	return client.New(configuration.CurrentConfig.Api)
}

func fanPath(id string) string {
	return "/fan/" + id + "/"
}

func printState(state api.FanState) {
	ui.Printfln("Fan %s: target %d RPM, actual %d RPM, thermal control: %t (%s)",
		state.Id, state.RpmTarget, state.RpmActual, state.AutoControl, state.Strategy)
}
