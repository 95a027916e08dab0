package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landgrid/suitability-cli/internal/geometry"
	"github.com/landgrid/suitability-cli/internal/project"
	"github.com/landgrid/suitability-cli/internal/suitability"
)

var (
	exportProject string
	exportGeoJSON string
	exportCSV     string
	exportXLSX    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run the analysis and export results in several formats at once",
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := project.Load(exportProject)
		if err != nil {
			return err
		}
		pc, err := proj.Context()
		if err != nil {
			return err
		}

		analyzer := suitability.NewAnalyzer(
			geometry.NewPlanar(),
			geometry.DatasetReprojector{},
			suitability.WithParallelism(cfg.Analysis.Parallelism),
			suitability.WithDiagnostics(func(msg string) {
				zap.L().Warn(msg)
			}),
		)

		result, err := analyzer.Run(cmd.Context(), pc)
		if err != nil {
			return err
		}

		outputs := []struct {
			path   string
			format string
		}{
			{exportGeoJSON, "geojson"},
			{exportCSV, "csv"},
			{exportXLSX, "xlsx"},
		}
		for _, out := range outputs {
			if out.path == "" {
				continue
			}
			if err := writeResult(result, out.path, out.format); err != nil {
				return err
			}
			zap.L().Info("exported", zap.String("format", out.format), zap.String("path", out.path))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportProject, "project", "project.yaml", "project file path")
	exportCmd.Flags().StringVar(&exportGeoJSON, "geojson", "", "GeoJSON output path")
	exportCmd.Flags().StringVar(&exportCSV, "csv", "", "CSV output path")
	exportCmd.Flags().StringVar(&exportXLSX, "xlsx", "", "XLSX output path")
	rootCmd.AddCommand(exportCmd)
}
