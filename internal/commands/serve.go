package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/scrapfolio/internal/daemon"
	"github.com/gerunddev/scrapfolio/internal/logger"
	"github.com/gerunddev/scrapfolio/internal/site"
	"github.com/gerunddev/scrapfolio/internal/styles"
	"github.com/gerunddev/scrapfolio/internal/tui"
)

// Serve runs the preview server in the foreground until interrupted
func Serve(args []string) {
	cfg := loadConfig()
	if addr := flagValue(args, "--addr"); addr != "" {
		cfg.Addr = addr
	}
	background := hasFlag(args, "--background")

	level := logger.ParseLevel(cfg.LogLevel)
	var log *logger.Logger
	if cfg.LogFile != "" {
		var echo []io.Writer
		if !background {
			echo = append(echo, os.Stderr)
		}
		fileLog, cleanup, err := logger.NewFileLogger(cfg.LogFile, level, echo...)
		if err != nil {
			fail("Failed to open log file: " + err.Error())
		}
		defer cleanup()
		log = fileLog
	} else if background {
		log = logger.Discard()
	} else {
		log = logger.NewWithLevel(os.Stderr, level)
	}
	log.ConfigLoaded(cfg.ProxyBase, cfg.Project, cfg.Addr)

	if running, pid, _ := daemon.IsRunning(); running && pid != os.Getpid() {
		fail(fmt.Sprintf("Server already running with PID %d", pid))
	}
	if err := daemon.WritePID(); err != nil {
		fail("Error writing PID file: " + err.Error())
	}
	defer func() {
		if err := daemon.RemovePID(); err != nil {
			log.Warn("failed to remove PID file on shutdown", "error", err)
		}
	}()

	srv := site.NewServer(newClient(cfg, log), newConverter(cfg), site.Options{
		Project:        cfg.Project,
		ListingLimit:   cfg.ListingLimit,
		ArtworkTag:     cfg.ArtworkTag,
		ExcludedTitles: cfg.ExcludedTitles,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.ServerStarted(cfg.Addr, cfg.ProxyBase, cfg.Project)
	if err := srv.Run(ctx, cfg.Addr); err != nil {
		log.Error("server failed", "error", err)
		_ = daemon.RemovePID()
		fail(err.Error())
	}
	log.Info("server shutdown complete")
}

// Start runs the preview server as a background process
func Start(args []string) {
	if running, pid, _ := daemon.IsRunning(); running {
		fail(fmt.Sprintf("Server already running with PID %d", pid))
	}

	serveArgs := []string{"serve", "--background"}
	if addr := flagValue(args, "--addr"); addr != "" {
		serveArgs = append(serveArgs, "--addr", addr)
	}

	if err := daemon.Daemonize(serveArgs); err != nil {
		fail("Failed to start server: " + err.Error())
	}

	time.Sleep(500 * time.Millisecond)

	running, pid, _ := daemon.IsRunning()
	if !running {
		fail("Server failed to start")
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("✓ Server started with PID %d", pid)))
	fmt.Println(styles.DimStyle.Render("  Run 'scrapfolio dashboard' to monitor the server"))
}

// Stop stops the background server
func Stop() {
	running, pid, _ := daemon.IsRunning()
	if !running {
		fmt.Println(styles.DimStyle.Render("Server is not running"))
		return
	}

	fmt.Printf("Stopping server (PID %d)...\n", pid)

	if err := daemon.Stop(); err != nil && !errors.Is(err, daemon.ErrNotRunning) {
		fail("Failed to stop server: " + err.Error())
	}

	for i := 0; i < 10; i++ {
		time.Sleep(500 * time.Millisecond)
		running, _, _ = daemon.IsRunning()
		if !running {
			break
		}
	}

	if running {
		fail("Server did not stop gracefully")
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Server stopped"))
}

// Dashboard shows live server status and the request log tail
func Dashboard() {
	cfg := loadConfig()

	gather := func() (*tui.ServerData, error) {
		running, pid, startTime := daemon.IsRunning()
		data := &tui.ServerData{
			Running:   running,
			PID:       pid,
			StartTime: startTime,
			Addr:      cfg.Addr,
		}
		if cfg.LogFile != "" {
			stats := ParseLogFile(cfg.LogFile, 20)
			data.LogLines = stats.Lines
			data.Requests = stats.Requests
			data.LastRequest = stats.LastRequest
		}
		return data, nil
	}

	p := tea.NewProgram(tui.InitDashboardModel(gather))
	if _, err := p.Run(); err != nil {
		fail("Error: " + err.Error())
	}
}
