package cmd

import (
	"bytes"
	"fmt"
	"github.com/markusressel/ecthermal/cmd/global"
	"github.com/markusressel/ecthermal/internal/hwmon"
	"github.com/markusressel/ecthermal/internal/ui"
	"github.com/markusressel/ecthermal/internal/util"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"path/filepath"
	"strconv"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects all hwmon fans and temperature sensors and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		chips := hwmon.GetChips()

		// === Print detected devices ===
		tableConfig := global.TableConfig()

		for _, chip := range chips {
			if len(chip.Name) <= 0 {
				continue
			}

			ui.Printfln("> %s (platform: %s)", chip.Name, chip.Platform)

			var fanRows [][]string
			for _, fan := range chip.Fans {
				_, file := filepath.Split(fan.RpmInput)
				fanRows = append(fanRows, []string{
					"", strconv.Itoa(fan.Index), fmt.Sprintf("%s (%s)", fan.Label, file), strconv.Itoa(int(fan.Rpm)),
				})
			}
			fanTable := table.Table{
				Headers: []string{"Fans   ", "Index", "Label", "RPM"},
				Rows:    fanRows,
			}

			var sensorRows [][]string
			for _, sensor := range chip.Sensors {
				_, file := filepath.Split(sensor.Input)
				kelvin := util.MilliCelsiusToKelvin(sensor.Value)
				sensorRows = append(sensorRows, []string{
					"", strconv.Itoa(sensor.Index), fmt.Sprintf("%s (%s)", sensor.Label, file),
					fmt.Sprintf("%dK (%d°C)", kelvin, util.KelvinToCelsius(kelvin)),
				})
			}
			sensorTable := table.Table{
				Headers: []string{"Sensors", "Index", "Label", "Value"},
				Rows:    sensorRows,
			}

			tables := []table.Table{fanTable, sensorTable}

			for idx, t := range tables {
				if t.Rows == nil {
					continue
				}
				var buf bytes.Buffer
				tableErr := t.WriteTable(&buf, tableConfig)
				if tableErr != nil {
					ui.Fatal("Error printing table: %v", tableErr)
				}
				tableString := buf.String()
				if idx < (len(tables) - 1) {
					ui.Printf(tableString)
				} else {
					ui.Printfln(tableString)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
