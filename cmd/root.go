package cmd

import (
	"fmt"
	"github.com/markusressel/ecthermal/cmd/config"
	"github.com/markusressel/ecthermal/cmd/fan"
	"github.com/markusressel/ecthermal/cmd/global"
	"github.com/markusressel/ecthermal/cmd/sensor"
	"github.com/markusressel/ecthermal/cmd/table"
	"github.com/markusressel/ecthermal/cmd/thermal"
	"github.com/markusressel/ecthermal/internal"
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ecthermal",
	Short: "A daemon mapping temperature sensors to thermal actions and fan speeds.",
	Long: `ecthermal evaluates the temperature sensors of a machine once per tick,
throttles or shuts down the system when thresholds are crossed and
drives the fans from the measured temperatures.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		printHeader()

		configuration.ReadConfigFile()
		err := configuration.Validate(viper.ConfigFileUsed())
		if err != nil {
			ui.ErrorAndNotify("Config Validation Error", err.Error())
			return
		}

		internal.RunDaemon()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/ecthermal.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)

	rootCmd.AddCommand(fan.Command)
	rootCmd.AddCommand(sensor.Command)
	rootCmd.AddCommand(table.Command)
	rootCmd.AddCommand(thermal.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("ec", pterm.NewStyle(pterm.FgLightRed)),
		pterm.NewLettersFromStringWithStyle("thermal", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	if err != nil {
		fmt.Println("ecthermal")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		setupUi()
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
