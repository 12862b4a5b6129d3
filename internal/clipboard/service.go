package clipboard

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// Service copies text to the system clipboard
type Service interface {
	Write(ctx context.Context, text string) error
}

type clipboardService struct {
	command []string
	logger  *slog.Logger

	// system clipboard, replaced in tests
	writeAll func(string) error
}

// NewService creates a clipboard service. A non-empty command replaces the
// system clipboard: it is run with the text on stdin.
func NewService(command string, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &clipboardService{
		command:  parseCommand(command),
		logger:   logger.With("component", "clipboard"),
		writeAll: clipboard.WriteAll,
	}
}

// Write copies text. With no configured command the system clipboard is
// tried first and clip.exe is used as a fallback under WSL.
func (s *clipboardService) Write(ctx context.Context, text string) error {
	if len(s.command) > 0 {
		return s.run(ctx, s.command, text)
	}

	err := s.writeAll(text)
	if err == nil {
		s.logger.Debug("copied to clipboard", "length", len(text))
		return nil
	}

	if isWSL() {
		s.logger.Debug("system clipboard unavailable, using clip.exe", "error", err)
		return s.run(ctx, []string{"clip.exe"}, text)
	}
	return fmt.Errorf("failed to copy to clipboard: %w", err)
}

func (s *clipboardService) run(ctx context.Context, parts []string, text string) error {
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(text)

	if out, err := cmd.CombinedOutput(); err != nil {
		s.logger.Warn("clipboard command failed", "command", parts[0], "error", err, "output", strings.TrimSpace(string(out)))
		return fmt.Errorf("clipboard command %s failed: %w", parts[0], err)
	}
	s.logger.Debug("copied with clipboard command", "command", parts[0], "length", len(text))
	return nil
}

// parseCommand splits a command line on spaces, keeping quoted sections together
func parseCommand(command string) []string {
	var (
		parts   []string
		current strings.Builder
		quote   rune
	)

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for _, r := range command {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote == 0 && r == ' ':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return parts
}

func isWSL() bool {
	version, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	v := strings.ToLower(string(version))
	return strings.Contains(v, "microsoft") || strings.Contains(v, "wsl")
}
