// Package server exposes the pairwise analysis over HTTP: upload a places
// file or ask for a random set, get the full pair listing back as JSON plus
// a downloadable results workbook.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"airdist/internal/calculator"
	"airdist/internal/config"
	"airdist/internal/metrics"
	"airdist/internal/models"
	"airdist/internal/places"
)

type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	reg     *prometheus.Registry
	metrics *metrics.Metrics

	mu  sync.Mutex
	rng *rand.Rand
}

type pairResult struct {
	Place1     string  `json:"place1"`
	Place2     string  `json:"place2"`
	DistanceKm float64 `json:"distance_km"`
}

type runResponse struct {
	Pairs      []pairResult `json:"pairs"`
	AverageKm  float64      `json:"average_km"`
	Closest    pairResult   `json:"closest_pair"`
	ResultFile string       `json:"result_file"`
}

// New builds a server with its own metrics registry and a clock-seeded
// random source for generated place sets.
func New(cfg *config.Config, log *slog.Logger) *Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Server{
		cfg:     cfg,
		log:     log,
		reg:     reg,
		metrics: metrics.NewMetrics(reg),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Router assembles the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{})))

	r.POST("/run", s.handleRun)
	r.GET("/download-result/:filename", s.handleDownload)

	return r
}

// Run starts the HTTP server and blocks until the context is canceled or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.InfoContext(ctx, "Starting analysis server", "port", s.cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) handleRun(c *gin.Context) {
	start := time.Now()

	placeSet, err := s.loadInput(c)
	if err != nil {
		s.metrics.AnalysesTotal.WithLabelValues("bad_input").Inc()
		status := http.StatusBadRequest
		if errors.Is(err, models.ErrTooFewPlaces) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"ok": false, "error": err.Error()})
		return
	}

	analysis, err := calculator.Analyze(placeSet)
	if err != nil {
		s.metrics.AnalysesTotal.WithLabelValues("bad_input").Inc()
		status := http.StatusBadRequest
		if errors.Is(err, models.ErrTooFewPlaces) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"ok": false, "error": err.Error()})
		return
	}

	filename := uuid.New().String() + ".xlsx"
	if err := places.WriteResults(filepath.Join(s.cfg.OutputDir, filename), analysis); err != nil {
		s.metrics.AnalysesTotal.WithLabelValues("error").Inc()
		s.log.ErrorContext(c.Request.Context(), "failed to write results workbook", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to write results"})
		return
	}

	s.metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	s.metrics.AnalysisSeconds.Observe(time.Since(start).Seconds())
	s.metrics.PairsComputed.Add(float64(len(analysis.Pairs)))

	resp := runResponse{
		Pairs:     make([]pairResult, len(analysis.Pairs)),
		AverageKm: analysis.Average,
		Closest: pairResult{
			Place1:     analysis.Closest().A.Name,
			Place2:     analysis.Closest().B.Name,
			DistanceKm: analysis.ClosestDistance(),
		},
		ResultFile: filename,
	}
	for i, p := range analysis.Pairs {
		resp.Pairs[i] = pairResult{
			Place1:     p.A.Name,
			Place2:     p.B.Name,
			DistanceKm: analysis.Distances[i],
		}
	}

	c.JSON(http.StatusOK, resp)
}

// loadInput resolves the place set for one request: an uploaded file wins,
// otherwise a count of random places.
func (s *Server) loadInput(c *gin.Context) ([]models.Place, error) {
	file, err := c.FormFile("input_file")
	if err == nil {
		path := filepath.Join(s.cfg.UploadDir, uuid.New().String()+"_"+filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, path); err != nil {
			return nil, fmt.Errorf("save upload: %w", err)
		}

		if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
			return places.LoadExcel(path)
		}
		return places.LoadCSV(path)
	}

	countStr := c.PostForm("count")
	if countStr == "" {
		return nil, errors.New("provide an input_file upload or a count form field")
	}
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return nil, fmt.Errorf("count must be an integer, got %q", countStr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return places.Generate(s.rng, count)
}

func (s *Server) handleDownload(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	target := filepath.Join(s.cfg.OutputDir, filename)
	if _, err := os.Stat(target); err != nil {
		c.String(http.StatusNotFound, "result not found")
		return
	}
	c.File(target)
}
