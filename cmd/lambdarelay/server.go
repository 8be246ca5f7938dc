package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tinytelemetry/lambdarelay/internal/forwarder"
	"github.com/tinytelemetry/lambdarelay/internal/httpserver"
	"github.com/tinytelemetry/lambdarelay/internal/ingest"
	"github.com/tinytelemetry/lambdarelay/internal/metrics"
	"github.com/tinytelemetry/lambdarelay/internal/model"
	"github.com/tinytelemetry/lambdarelay/internal/routing"
	"golang.org/x/sync/errgroup"
)

// runServer starts the webhook relay and blocks until a shutdown signal.
func runServer(cfg appConfig) error {
	cleanupLogger := configureRuntimeLogger(cfg.LogPath)
	defer cleanupLogger()

	resolver, routeDesc, err := buildResolver(cfg)
	if err != nil {
		return fmt.Errorf("failed to configure routing: %w", err)
	}

	client, err := forwarder.NewClient(cfg.IngestURL, forwarder.WithTimeout(cfg.ForwardTimeout))
	if err != nil {
		return fmt.Errorf("failed to configure forwarder: %w", err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	processor, err := ingest.NewProcessor(ingest.ProcessorConfig{
		Extractor: ingest.NewPositionalExtractor(),
		Builder:   ingest.NewBuilder(cfg.ContextName),
		Resolver:  resolver,
		Forwarder: client,
		Recorder:  m,
	})
	if err != nil {
		return err
	}

	api := httpserver.NewServer(cfg.Addr, processor, httpserver.Config{
		SwallowBatchErrors: cfg.SwallowBatchErrors,
		MaxBodyBytes:       cfg.MaxBodyBytes,
		Metrics:            m,
		Gatherer:           prometheus.DefaultGatherer,
	})
	if err := api.Start(); err != nil {
		return fmt.Errorf("failed to start webhook server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printStartupBanner(cfg, api.Addr(), routeDesc)
	log.Printf("lambdarelay: listening on %s, forwarding to %s (%s)", api.Addr(), cfg.IngestURL, routeDesc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		fmt.Println("\nShutting down gracefully...")
		return api.Stop()
	})

	if err := g.Wait(); err != nil {
		log.Printf("lambdarelay: shutdown: %v", err)
		return err
	}
	return nil
}

func buildResolver(cfg appConfig) (ingest.TargetResolver, string, error) {
	if cfg.RoutesFile != "" {
		table, err := routing.LoadTable(cfg.RoutesFile)
		if err != nil {
			return nil, "", err
		}
		return table, fmt.Sprintf("%d account routes", table.Len()), nil
	}
	static, err := routing.NewStatic(model.Target{ProjectID: cfg.ProjectID, PublicKey: cfg.PublicKey})
	if err != nil {
		return nil, "", err
	}
	return static, "project " + cfg.ProjectID, nil
}

func configureRuntimeLogger(logPath string) func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if logPath == "" || logPath == "-" {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		_ = f.Close()
	}
}

func printStartupBanner(cfg appConfig, addr, routeDesc string) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	var lines []string
	lines = append(lines, "")
	lines = append(lines, cyan.Bold(true).Render("    lambdarelay")+" "+dim.Render("v"+version))
	lines = append(lines, "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator)
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Webhook"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Listen         %s", check, cyan.Render(addr)))
	lines = append(lines, fmt.Sprintf("    %s  Endpoint       %s", check, cyan.Render("POST /webhook")))
	lines = append(lines, fmt.Sprintf("    %s  Metrics        %s", check, cyan.Render("GET /metrics")))
	if cfg.SwallowBatchErrors {
		lines = append(lines, fmt.Sprintf("    %s  Batch errors   %s", check, dim.Render("swallowed (always 200)")))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Batch errors   %s", dot, dim.Render("reported (500)")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Forwarding"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Ingest URL     %s", check, cyan.Render(cfg.IngestURL)))
	lines = append(lines, fmt.Sprintf("    %s  Routing        %s", check, dim.Render(routeDesc)))
	lines = append(lines, fmt.Sprintf("    %s  Timeout        %s", check, dim.Render(cfg.ForwardTimeout.String())))
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Config"))
	lines = append(lines, "")
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}
	if cfg.LogPath != "" && cfg.LogPath != "-" {
		lines = append(lines, fmt.Sprintf("    %s  Log File       %s", check, dim.Render(shortenPath(cfg.LogPath))))
	}

	lines = append(lines, "")
	lines = append(lines, separator)
	lines = append(lines, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"))
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
