package table

import "github.com/spf13/cobra"

var Command = &cobra.Command{
	Use:   "table",
	Short: "Fan table related commands",
	Long:  ``,
}
