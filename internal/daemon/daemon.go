// Package daemon detaches the touchwave server into the background.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/sevlyar/go-daemon"
)

// newContext builds the detach context with pid and log files in dataDir.
func newContext(dataDir string) *daemon.Context {
	return &daemon.Context{
		PidFileName: filepath.Join(dataDir, "touchwave.pid"),
		PidFilePerm: 0o644,
		LogFileName: filepath.Join(dataDir, "touchwave.log"),
		LogFilePerm: 0o640,
		WorkDir:     ".",
		Umask:       0o27,
		Args:        os.Args,
	}
}

// Spawn re-executes the current command in the background. The parent gets
// the child process handle; the reborn child gets nil and a release func to
// defer until it exits.
func Spawn(dataDir string) (*os.Process, func(), error) {
	ctx := newContext(dataDir)
	child, err := ctx.Reborn()
	if err != nil {
		return nil, nil, fmt.Errorf("daemonize: %w", err)
	}
	if child != nil {
		return child, func() {}, nil
	}
	return nil, func() { _ = ctx.Release() }, nil
}

// Stop signals the detached server recorded in dataDir's pid file.
func Stop(dataDir string) error {
	proc, err := newContext(dataDir).Search()
	if err != nil {
		return fmt.Errorf("no running server found: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal server: %w", err)
	}
	return nil
}
