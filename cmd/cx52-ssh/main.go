package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	wishbubble "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/coreos/go-systemd/v22/daemon"

	cx52wizard "github.com/cryptosim/hagelin/cmd/cx52-wizard"
	cx52log "github.com/cryptosim/hagelin/pkg/logging"
)

func main() {
	var dataDir, addr, logLevel, logFile string
	flag.StringVar(&dataDir, "data-dir", "", "Directory for storing SSH host key")
	flag.StringVar(&addr, "addr", "0.0.0.0:52052", "Address to listen on")
	flag.StringVar(&logLevel, "log-level", envOr("CX52_LOG_LEVEL", "info"), "Log level")
	flag.StringVar(&logFile, "log-file", os.Getenv("CX52_LOG_FILE"), "Rotated log file (default stderr)")
	flag.Parse()

	logger, err := cx52log.New(cx52log.Config{Level: logLevel, File: logFile})
	if err != nil {
		log.Fatalf("invalid logging configuration: %v", err)
	}

	hostKeyPath, err := hostKeyPath(dataDir)
	if err != nil {
		logger.Fatalf("failed to prepare host key directory: %v", err)
	}

	srv, err := wish.NewServer(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			wishbubble.Middleware(cx52wizard.WishHandler(logger)),
			logging.Middleware(),
		),
	)
	if err != nil {
		logger.Fatalf("failed to create SSH server: %v", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	logger.Infof("cx52-ssh listening on %s (host key: %s)", addr, hostKeyPath)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatalf("error starting SSH server: %v", err)
		}
	}()

	if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		logger.WithError(err).Warn("failed to notify systemd")
	} else if ok {
		logger.Debug("notified systemd readiness")
	}

	<-done
	logger.Info("shutting down")
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		logger.Errorf("failed to stop SSH server: %v", err)
	}
}

// hostKeyPath picks the host key location, creating ~/.ssh when no data
// directory is given.
func hostKeyPath(dataDir string) (string, error) {
	if dataDir != "" {
		return filepath.Join(dataDir, "cx52_ssh_host_key"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	// Ensure .ssh directory exists
	sshDir := filepath.Join(homeDir, ".ssh")
	if err := os.MkdirAll(sshDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(sshDir, "cx52_ssh_host_key"), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
