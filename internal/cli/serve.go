// Package cli implements the touchwave command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/frudas24/touchwave/internal/app"
	"github.com/frudas24/touchwave/internal/config"
	"github.com/frudas24/touchwave/internal/daemon"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gesture server",
	Long:  "Serves the touch websocket, WebRTC signaling, and the demo touchpad UI.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// GetBool/GetString cannot fail for defined flags
		detach, _ := cmd.Flags().GetBool("detach")
		staticDir, _ := cmd.Flags().GetString("static")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if detach {
			child, release, err := daemon.Spawn(cfg.DataDir)
			if err != nil {
				return err
			}
			if child != nil {
				fmt.Printf("touchwave detached, pid %d\n", child.Pid)
				return nil
			}
			defer release()
		}

		return runServe(cfg, staticDir)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a detached server",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := daemon.Stop(cfg.DataDir); err != nil {
			return err
		}
		fmt.Println("stop signal sent")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stopCmd)

	serveCmd.Flags().BoolP("detach", "d", false, "run the server in the background")
	serveCmd.Flags().String("static", "", "serve UI assets from this directory instead of the embedded copy")
}

// runServe wires the application and blocks until shutdown.
func runServe(cfg config.Config, staticDir string) error {
	log := logrus.StandardLogger()
	if !verbose {
		if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
			log.SetLevel(level)
		}
	}
	logStartup(log, cfg)

	application, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Stop(); err != nil {
			log.WithError(err).Warn("shutdown incomplete")
		}
	}()

	mux := http.NewServeMux()
	application.RegisterRoutes(mux, staticDir)
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// logStartup prints startup checks and connection info.
func logStartup(log logrus.FieldLogger, cfg config.Config) {
	log.Info("touchwave starting")

	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		log.Infof("env check: ok (%s)", envPath)
	} else {
		log.Infof("env check: missing (%s)", envPath)
	}

	if fileExists(cfg.ProfilesPath) {
		log.Infof("profiles: %s", cfg.ProfilesPath)
	} else {
		log.Infof("profiles: builtin (no %s)", cfg.ProfilesPath)
	}

	if cfg.TraceEnabled {
		log.Infof("trace dir: %s", cfg.TraceDir)
	}

	logListenStatus(log, cfg.ListenAddr)
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(log logrus.FieldLogger, addr string) {
	log.Infof("listen addr: %s", addr)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	log.Infof("local url: http://%s", net.JoinHostPort(host, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
