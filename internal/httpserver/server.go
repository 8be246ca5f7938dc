package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tinytelemetry/lambdarelay/internal/ingest"
	"github.com/tinytelemetry/lambdarelay/internal/metrics"
	"github.com/tinytelemetry/lambdarelay/internal/model"
)

// FirehoseRequestIDHeader carries the delivery id when the body omits it.
const FirehoseRequestIDHeader = "X-Amz-Firehose-Request-Id"

// BatchProcessor is the narrow processing contract required by the webhook.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, records []model.LogRecord) ingest.BatchResult
}

// Config controls webhook behavior.
type Config struct {
	// SwallowBatchErrors answers 200 even when records failed.
	SwallowBatchErrors bool
	MaxBodyBytes       int64
	Metrics            *metrics.Metrics
	Gatherer           prometheus.Gatherer
}

// Server exposes the webhook, health and metrics endpoints.
type Server struct {
	addr      string
	processor BatchProcessor
	cfg       Config
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
	batches   atomic.Int64
}

// NewServer creates a new webhook server.
func NewServer(addr string, processor BatchProcessor, cfg Config) *Server {
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = model.DefaultMaxBodyBytes
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      addr,
		processor: processor,
		cfg:       cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

// Handler builds the gin router.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	if s.cfg.Metrics != nil {
		r.Use(s.cfg.Metrics.Instrument())
	}

	r.POST("/webhook", s.handleWebhook)
	r.GET("/api/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{})))
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("httpserver: serve: %v", err)
		}
	}()
	return nil
}

// Addr returns the bound listen address, useful when started on port 0.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts down the HTTP server, letting in-flight batches finish.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.cancel()
	return err
}

func (s *Server) handleWebhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)

	var req model.FirehoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if req.Records == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing records field"})
		return
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = c.GetHeader(FirehoseRequestIDHeader)
	}

	s.batches.Add(1)
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.RecordBatch()
	}

	// A started batch runs to completion even if the caller goes away.
	result := s.processor.ProcessBatch(context.WithoutCancel(c.Request.Context()), req.Records)

	resp := model.FirehoseResponse{
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
	}
	if result.Err != nil && !s.cfg.SwallowBatchErrors {
		resp.ErrorMessage = fmt.Sprintf("%d of %d records failed: %v", result.Failed, result.Received, result.Err)
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"uptime":  time.Since(s.startTime).String(),
		"batches": s.batches.Load(),
	})
}
