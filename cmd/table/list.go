package table

import (
	"bytes"
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/ecthermal/cmd/global"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/curves"
	"github.com/markusressel/ecthermal/internal/ui"
	"github.com/markusressel/ecthermal/internal/util"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
	"strconv"
	"strings"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the configured fan tables to console",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		global.ReadValidConfig()

		sensorIndex := map[string]int{}
		for i, sensorConfig := range configuration.CurrentConfig.Sensors {
			sensorIndex[sensorConfig.ID] = i
		}

		for idx, tableConf := range configuration.CurrentConfig.Tables {
			if idx > 0 {
				ui.Printfln("")
				ui.Printfln("")
			}

			fanTable, err := curves.NewTable(tableConf, sensorIndex)
			if err != nil {
				return err
			}

			if err = printTable(fanTable); err != nil {
				return err
			}
			if graph := plotLevels(fanTable); len(graph) > 0 {
				ui.Printfln(graph)
			}
		}

		return nil
	},
}

func printTable(fanTable *curves.Table) error {
	tab := table.Table{
		Headers: []string{"ID", "Sensors", "Direction", "Debounce", "Monotonic"},
		Rows: [][]string{{
			fanTable.ID,
			strings.Join(fanTable.SensorIds, ", "),
			fanTable.Direction.String(),
			strconv.Itoa(fanTable.Debounce),
			strconv.FormatBool(fanTable.IsMonotonic()),
		}},
	}

	levelTab := table.Table{
		Headers: []string{"Level", "On (K)", "Off (K)", "RPM"},
	}
	for i, level := range fanTable.Levels {
		levelTab.Rows = append(levelTab.Rows, []string{
			strconv.Itoa(i), joinInts(level.On), joinInts(level.Off), joinInts(level.Rpm),
		})
	}

	for _, t := range []table.Table{tab, levelTab} {
		var buf bytes.Buffer
		if err := t.WriteTable(&buf, global.TableConfig()); err != nil {
			return err
		}
		ui.Printfln(buf.String())
	}
	return nil
}

// plotLevels draws the rpm of every fan column over the table levels
func plotLevels(fanTable *curves.Table) string {
	if len(fanTable.Levels) < 2 {
		return ""
	}

	columns := len(fanTable.Levels[0].Rpm)
	var series [][]float64
	var all []int
	for column := 0; column < columns; column++ {
		var values []float64
		for level := range fanTable.Levels {
			rpm := fanTable.Rpm(level, column)
			values = append(values, float64(rpm))
			all = append(all, rpm)
		}
		series = append(series, values)
	}
	if len(series) <= 0 {
		return ""
	}

	caption := fmt.Sprintf("RPM / Level (max %d RPM)", util.MaxInt(all, 0))
	return asciigraph.PlotMany(series, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
}

func joinInts(values []int) string {
	var texts []string
	for _, value := range values {
		if value == curves.Unused {
			texts = append(texts, "-")
		} else {
			texts = append(texts, strconv.Itoa(value))
		}
	}
	return strings.Join(texts, " ")
}

func init() {
	Command.AddCommand(listCmd)
}
