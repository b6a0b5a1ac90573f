// Command forecast runs one-shot cyclone forecasts and inspects coastal
// region files without Kafka.
//
// Usage:
//
//	forecast run --input observation.json --horizon 72 --step 6 --seed 42
//	forecast regions --file regions.yaml
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "forecast",
		Short:        "Cyclone trajectory and intensity forecasts",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newRegionsCmd())
	return root
}
