package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// PlayerConfig holds the media player used by "decode --play"
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // empty = auto-detect
	Args    []string `mapstructure:"args"`
}

// candidatePlayers defines the preferred player order for each platform.
// Entries prefixed "open-a:" are macOS application names.
var candidatePlayers = map[string][]string{
	"darwin":  {"open-a:IINA", "vlc", "open-a:VLC", "mpv"},
	"linux":   {"mpv", "celluloid", "haruna", "vlc"},
	"windows": {"vlc", "mpv", "PotPlayerMini64.exe"},
}

// Player opens a reconstructed file in an external media player
type Player struct {
	command string
	args    []string
	logger  *slog.Logger

	// Process hooks, replaced in tests
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// NewPlayer creates a player; an empty command auto-detects one
func NewPlayer(cfg PlayerConfig, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		command:  cfg.Command,
		args:     cfg.Args,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Open launches path without waiting for the player to exit.
// Order: configured command, first installed candidate, system default.
func (p *Player) Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if p.command != "" {
		p.logger.Info("using configured player", "command", p.command, "path", abs)
		return p.start(p.command, append(append([]string{}, p.args...), abs)...)
	}

	for _, candidate := range p.candidates() {
		if app, ok := strings.CutPrefix(candidate, "open-a:"); ok {
			if err := p.start("open", "-a", app, abs); err == nil {
				p.logger.Info("launched with detected player", "player", app)
				return nil
			}
			continue
		}
		if _, err := p.lookPath(candidate); err != nil {
			p.logger.Debug("player not installed", "player", candidate)
			continue
		}
		if err := p.start(candidate, abs); err == nil {
			p.logger.Info("launched with detected player", "player", candidate)
			return nil
		}
	}

	p.logger.Info("no candidate players found, using system default")
	name, args := defaultOpener(abs)
	if err := p.start(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", abs, err)
	}
	return nil
}

func (p *Player) candidates() []string {
	if c, ok := candidatePlayers[runtime.GOOS]; ok {
		return c
	}
	return candidatePlayers["linux"]
}

// defaultOpener returns the system handler command for path
func defaultOpener(path string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}
