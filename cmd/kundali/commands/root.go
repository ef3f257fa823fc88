package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "kundali",
	Short: "Sidereal natal chart engine",
	Long: `Compute Vedic (Lahiri) natal charts from birth data.

Examples:
  kundali compute '{"name":"Asha","dob":"1990-06-15","tob":"10:30","lat":28.6139,"lon":77.209,"tz":"IST"}'
  kundali compute --file people.json --store --owner asha
  kundali token --subject asha
  kundali serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			return os.Setenv("CONFIG_PATH", configFile)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default configs/config.yaml)")
}
