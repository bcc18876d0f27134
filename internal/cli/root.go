// Package cli implements the touchwave command tree.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "dev"

var verbose bool

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "touchwave",
	Short: "Touch gesture recognition server",
	Long:  "touchwave turns raw contact streams into tap, swipe, pinch, and press events.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// initLogging raises the log level before any command runs.
func initLogging() {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// printJSON writes an indented JSON value to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
