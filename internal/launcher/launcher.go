// Package launcher starts the local server behind an app's startCommand.
// The store never executes anything itself; this is the only place that
// spawns processes.
package launcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

var (
	// ErrDisabled is returned when starting apps is turned off.
	ErrDisabled = errors.New("starting apps is disabled")
	// ErrNoCommand is returned for apps without a startCommand.
	ErrNoCommand = errors.New("no start command configured for this app")
	// ErrCommandNotFound is returned when the startCommand path does not exist.
	ErrCommandNotFound = errors.New("start command file not found")
)

// Runner starts cmd without waiting for it to finish.
type Runner func(cmd *exec.Cmd) error

// Launcher runs start commands.
type Launcher struct {
	enabled bool
	logger  logger.Logger
	run     Runner
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithRunner replaces the process starter.
func WithRunner(r Runner) Option {
	return func(l *Launcher) { l.run = r }
}

// New creates a launcher. A disabled launcher rejects every Start.
func New(enabled bool, log logger.Logger, opts ...Option) *Launcher {
	l := &Launcher{
		enabled: enabled,
		logger:  log.Named("launcher"),
		run:     startDetached,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Enabled reports whether Start may spawn processes.
func (l *Launcher) Enabled() bool { return l.enabled }

// Start launches app.StartCommand and returns once the process is running.
// The process is not awaited and outlives the caller.
func (l *Launcher) Start(app domain.App) error {
	if !l.enabled {
		return ErrDisabled
	}
	if strings.TrimSpace(app.StartCommand) == "" {
		return ErrNoCommand
	}

	path := app.StartCommand
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrCommandNotFound, path)
		}
		return fmt.Errorf("failed to access %s: %w", path, err)
	}

	cmd, err := Command(path, info)
	if err != nil {
		return err
	}

	if err := l.run(cmd); err != nil {
		l.logger.Error("failed to start app",
			logger.String("id", app.ID),
			logger.String("command", path),
			logger.Error(err))
		return fmt.Errorf("failed to start %s: %w", path, err)
	}

	l.logger.Info("started app",
		logger.String("id", app.ID),
		logger.String("name", app.Name),
		logger.String("command", path))
	return nil
}

// Command builds the process for path:
//   - .command files are handed to `open` (a Terminal window on macOS)
//   - .sh scripts get their executable bits set, then run from their directory
//   - anything else is executed directly from its directory
func Command(path string, info fs.FileInfo) (*exec.Cmd, error) {
	dir := filepath.Dir(path)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".command":
		return exec.Command("open", path), nil
	case ".sh":
		if mode := info.Mode().Perm(); mode&0o111 != 0o111 {
			if err := os.Chmod(path, mode|0o111); err != nil {
				return nil, fmt.Errorf("failed to make %s executable: %w", path, err)
			}
		}
	}

	cmd := exec.Command(path)
	cmd.Dir = dir
	return cmd, nil
}

// startDetached starts cmd and reaps it in the background.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
