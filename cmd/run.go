package main

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landgrid/suitability-cli/internal/export"
	"github.com/landgrid/suitability-cli/internal/geometry"
	"github.com/landgrid/suitability-cli/internal/project"
	"github.com/landgrid/suitability-cli/internal/suitability"
)

var (
	runProject  string
	runOut      string
	runFormat   string
	runParallel int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the suitability analysis for a project file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := zap.L()

		proj, err := project.Load(runProject)
		if err != nil {
			return err
		}

		pc, err := proj.Context()
		if err != nil {
			return err
		}
		log.Info("project loaded",
			zap.String("title", pc.Title),
			zap.Int("datasets", pc.Datasets.Len()),
			zap.Int("criteria", len(pc.Criteria)),
		)

		parallelism := runParallel
		if parallelism == 0 {
			parallelism = cfg.Analysis.Parallelism
		}

		analyzer := suitability.NewAnalyzer(
			geometry.NewPlanar(),
			geometry.DatasetReprojector{},
			suitability.WithParallelism(parallelism),
			suitability.WithProgress(func(frac float64, stage string) {
				log.Info("analysis progress", zap.Float64("fraction", frac), zap.String("stage", stage))
			}),
			suitability.WithDiagnostics(func(msg string) {
				log.Warn(msg)
			}),
		)

		result, err := analyzer.Run(ctx, pc)
		if err != nil {
			return err
		}

		format := runFormat
		if format == "" {
			format = cfg.Export.Format
		}
		return writeResult(result, runOut, format)
	},
}

// writeResult serializes a result to a file, or stdout when path is "-".
func writeResult(result *suitability.AnalysisResult, path, format string) error {
	var w *os.File
	if path == "" || path == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "create output %s", path)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	switch strings.ToLower(format) {
	case "geojson", "":
		return export.GeoJSON(result, w)
	case "csv":
		return export.CSV(result, w)
	case "xlsx":
		return export.XLSX(result, w)
	}
	return eris.Errorf("unsupported export format %q", format)
}

func init() {
	runCmd.Flags().StringVar(&runProject, "project", "project.yaml", "project file path")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "-", "output path (- for stdout)")
	runCmd.Flags().StringVar(&runFormat, "format", "", "output format: geojson, csv, xlsx (default from config)")
	runCmd.Flags().IntVar(&runParallel, "parallelism", 0, "concurrent criterion evaluations (default from config)")
	rootCmd.AddCommand(runCmd)
}
