package sound

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// NopPlayer plays nothing.
type NopPlayer struct{}

// Play implements Player.
func (NopPlayer) Play(context.Context, Kind) error { return nil }

// Beeper rings the terminal bell.
type Beeper interface {
	Beep()
}

// BellPlayer rings the terminal bell for the margin bell and page feed and
// stays silent for every other sound.
type BellPlayer struct {
	Beeper Beeper
}

// Play implements Player.
func (p BellPlayer) Play(ctx context.Context, k Kind) error {
	if k != Bell && k != Feed {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.Beeper != nil {
		p.Beeper.Beep()
	}
	return nil
}

// knownPlayers lists external sample players in order of preference.
var knownPlayers = map[string][]string{
	"darwin": {"afplay"},
	"linux":  {"paplay", "aplay", "pw-play"},
}

// DetectCommand returns the first known sample player found on PATH.
func DetectCommand() (string, error) {
	for _, name := range knownPlayers[runtime.GOOS] {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoPlayer
}

// CommandPlayer plays <Dir>/<kind>.wav by running an external command with
// the sample path as its last argument. Kinds without a sample fall back to
// Fallback when it is set.
type CommandPlayer struct {
	Command  string
	Args     []string
	Dir      string
	Fallback Player
}

// NewCommandPlayer creates a player for the samples in dir. An empty
// command is resolved with DetectCommand.
func NewCommandPlayer(command, dir string, fallback Player) (*CommandPlayer, error) {
	if command == "" {
		var err error
		if command, err = DetectCommand(); err != nil {
			return nil, err
		}
	}
	return &CommandPlayer{Command: command, Dir: dir, Fallback: fallback}, nil
}

// SamplePath returns the sample file for k.
func (p *CommandPlayer) SamplePath(k Kind) string {
	return filepath.Join(p.Dir, k.String()+".wav")
}

// Play implements Player.
func (p *CommandPlayer) Play(ctx context.Context, k Kind) error {
	path := p.SamplePath(k)
	if _, err := os.Stat(path); err != nil {
		if p.Fallback != nil {
			return p.Fallback.Play(ctx, k)
		}
		return err
	}

	args := append(append([]string(nil), p.Args...), path)
	cmd := exec.CommandContext(ctx, p.Command, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if len(out) > 0 {
			return fmt.Errorf("%s: %w: %s", filepath.Base(p.Command), err, out)
		}
		return fmt.Errorf("%s: %w", filepath.Base(p.Command), err)
	}
	return nil
}

// PlayerFunc adapts a function to the Player interface.
type PlayerFunc func(ctx context.Context, k Kind) error

// Play implements Player.
func (f PlayerFunc) Play(ctx context.Context, k Kind) error {
	return f(ctx, k)
}
