package audio

import (
	"errors"
	"log/slog"
	"os/exec"
)

// ProcessLauncher starts players as detached OS processes. Their output and
// exit status are ignored.
type ProcessLauncher struct {
	logger *slog.Logger
}

// NewProcessLauncher creates a ProcessLauncher.
func NewProcessLauncher(logger *slog.Logger) *ProcessLauncher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessLauncher{logger: logger}
}

// Launch starts argv and returns once the process is running.
func (l *ProcessLauncher) Launch(argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec // argv[0] comes from the candidate table
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return err
	}

	// Reap the child so it does not linger as a zombie.
	go func() {
		if err := cmd.Wait(); err != nil {
			l.logger.Debug("player exited", "command", argv[0], "error", err)
		}
	}()
	return nil
}
