package global

import (
	"github.com/markusressel/ecthermal/internal/configuration"
	"github.com/markusressel/ecthermal/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/viper"
	"github.com/tomlazar/table"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// ReadValidConfig loads the configuration file and exits if it is invalid
func ReadValidConfig() {
	configuration.ReadConfigFile()
	if err := configuration.Validate(viper.ConfigFileUsed()); err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}
}

func TableConfig() *table.Config {
	return &table.Config{
		ShowIndex:       false,
		Color:           !NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	}
}
