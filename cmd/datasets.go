package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/landgrid/suitability-cli/internal/loader"
)

var datasetsSRID int

var datasetsCmd = &cobra.Command{
	Use:   "datasets [file...]",
	Short: "Inspect geospatial dataset files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			srid := datasetsSRID
			if srid == 0 {
				srid = cfg.Loader.DefaultSRID
			}
			d, err := loader.Load(path, "", srid)
			if err != nil {
				return err
			}

			types := map[string]int{}
			for _, f := range d.Features {
				types[f.Geom.Type().String()]++
			}
			var typeList []string
			for t, n := range types {
				typeList = append(typeList, fmt.Sprintf("%s(%d)", t, n))
			}

			fmt.Printf("%s\n", path)
			fmt.Printf("  name:     %s\n", d.Name)
			fmt.Printf("  srid:     EPSG:%d\n", d.SRID)
			fmt.Printf("  features: %d\n", d.Len())
			fmt.Printf("  types:    %s\n", strings.Join(typeList, ", "))
			fmt.Printf("  columns:  %s\n", strings.Join(d.Columns(), ", "))
		}
		return nil
	},
}

func init() {
	datasetsCmd.Flags().IntVar(&datasetsSRID, "srid", 0, "SRID for shapefiles (default from config)")
	rootCmd.AddCommand(datasetsCmd)
}
