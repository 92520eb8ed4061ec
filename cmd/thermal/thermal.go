package thermal

import (
	"fmt"
	"github.com/markusressel/ecthermal/cmd/client"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "thermal",
	Short: "Print and change the thresholds of a running daemon",
	Long:  ``,
}

func newClient() (*client.Client, error) {
	configuration.ReadConfigFile()
	return client.New(configuration.CurrentConfig.Api)
}

func sensorPath(index int) string {
	return fmt.Sprintf("/thermal/%d/", index)
}
