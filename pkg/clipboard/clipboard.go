// Package clipboard copies text to the system clipboard by piping it into the
// first clipboard utility found on PATH.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoClipboard is returned when none of the candidate utilities is installed.
var ErrNoClipboard = errors.New("no clipboard utility found")

// Command is one clipboard utility invocation that reads the text on stdin.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// DefaultCommands returns the utilities tried on the current platform, in order.
func DefaultCommands() []Command {
	switch runtime.GOOS {
	case "darwin":
		return []Command{{Name: "pbcopy"}}
	case "windows":
		return []Command{{Name: "clip.exe"}}
	default:
		return []Command{
			{Name: "wl-copy"},
			{Name: "xclip", Args: []string{"-selection", "clipboard"}},
			{Name: "xsel", Args: []string{"--clipboard", "--input"}},
			{Name: "clip.exe"}, // WSL
		}
	}
}

// Copier writes text to a clipboard utility.
type Copier struct {
	Commands []Command
	LookPath func(file string) (string, error)
}

// New returns a Copier using DefaultCommands.
func New() *Copier {
	return &Copier{Commands: DefaultCommands(), LookPath: exec.LookPath}
}

// Copy pipes content into the first available utility and waits for it to exit.
func (c *Copier) Copy(ctx context.Context, content string) (Command, error) {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, candidate := range c.Commands {
		bin, err := lookPath(candidate.Name)
		if err != nil {
			continue
		}

		cmd := exec.CommandContext(ctx, bin, candidate.Args...)
		cmd.Stdin = strings.NewReader(content)
		var stderr strings.Builder
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return candidate, fmt.Errorf("%s: %w: %s", candidate, err, msg)
			}
			return candidate, fmt.Errorf("%s: %w", candidate, err)
		}
		return candidate, nil
	}
	return Command{}, ErrNoClipboard
}

// Copy copies content using the default utilities.
func Copy(ctx context.Context, content string) (Command, error) {
	return New().Copy(ctx, content)
}
