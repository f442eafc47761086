package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the tool version recorded in every run's environment
// fingerprint. Overridden at build time via -ldflags.
var Version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the arch-map version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("arch-map version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
