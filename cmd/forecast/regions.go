package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/storm-forecast-service/internal/region"
)

func newRegionsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "Validate a coastal region file and list its regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := loadRegions(file)
			if err != nil {
				return err
			}
			return printRegions(cmd.OutOrStdout(), registry)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "coastal region YAML file (default built-in regions)")
	return cmd
}

func loadRegions(path string) (*region.Registry, error) {
	if path == "" {
		return region.Default(), nil
	}
	return region.LoadFile(path)
}

func printRegions(w io.Writer, registry *region.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tMIN_LAT\tMAX_LAT\tMIN_LON\tMAX_LON")
	for _, r := range registry.Regions() {
		minLat, maxLat, minLon, maxLon := r.Bounds()
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\n", r.Name, r.Kind, minLat, maxLat, minLon, maxLon)
	}
	return tw.Flush()
}
