package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/landgrid/suitability-cli/internal/export"
	"github.com/landgrid/suitability-cli/internal/geometry"
	"github.com/landgrid/suitability-cli/internal/project"
	"github.com/landgrid/suitability-cli/internal/suitability"
)

var (
	servePort    int
	serveProject string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve analysis runs and results over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		proj, err := project.Load(serveProject)
		if err != nil {
			return err
		}
		pc, err := proj.Context()
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: serveHandler(pc, cfg.Analysis.Parallelism),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port), zap.String("project", serveProject))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// serveHandler builds the HTTP API. Each analyze request runs on its own
// analyzer, so concurrent requests never share orchestrator state; only
// the latest finished result is retained.
func serveHandler(pc *suitability.ProjectContext, parallelism int) http.Handler {
	var (
		mu     sync.RWMutex
		latest *suitability.AnalysisResult
	)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /analyze", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Threshold   *float64 `json:"threshold"`
			BooleanMode string   `json:"boolean_mode"`
		}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
		}

		runPC := *pc
		if req.Threshold != nil {
			if *req.Threshold < 0 || *req.Threshold > 1 {
				http.Error(w, `{"error":"threshold outside [0,1]"}`, http.StatusBadRequest)
				return
			}
			runPC.Config.Threshold = *req.Threshold
		}
		if req.BooleanMode != "" {
			mode, err := suitability.ParseBooleanMode(req.BooleanMode)
			if err != nil {
				http.Error(w, `{"error":"unknown boolean mode"}`, http.StatusBadRequest)
				return
			}
			runPC.Config.BooleanMode = mode
		}

		analyzer := suitability.NewAnalyzer(
			geometry.NewPlanar(),
			geometry.DatasetReprojector{},
			suitability.WithParallelism(parallelism),
			suitability.WithDiagnostics(func(msg string) {
				zap.L().Warn(msg)
			}),
		)

		result, err := analyzer.Run(r.Context(), &runPC)
		if err != nil {
			zap.L().Error("serve: analysis failed", zap.Error(err))
			http.Error(w, `{"error":"analysis failed"}`, http.StatusUnprocessableEntity)
			return
		}

		mu.Lock()
		latest = result
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":   "complete",
			"features": result.Boundary.Len(),
			"type":     result.Type.String(),
		})
	})

	mux.HandleFunc("GET /result", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		result := latest
		mu.RUnlock()
		if result == nil {
			http.Error(w, `{"error":"no analysis has been run"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		if err := export.GeoJSON(result, w); err != nil {
			zap.L().Error("serve: encode result", zap.Error(err))
		}
	})

	return mux
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveProject, "project", "project.yaml", "project file path")
	rootCmd.AddCommand(serveCmd)
}
