// Package clipboard provides clipboard operations via platform-specific commands.
package clipboard

import (
	"os/exec"
	"strings"

	"github.com/fwojciec/splitdiff"
)

// Ensure CommandCopy implements the Clipboard interface.
var _ splitdiff.Clipboard = (*CommandCopy)(nil)

// CommandCopy implements Clipboard by piping content to a command's stdin.
type CommandCopy struct {
	name string
	args []string
}

// NewCommandCopy returns a clipboard backed by the given command line,
// e.g. "xclip -selection clipboard". An empty command falls back to
// pbcopy.
func NewCommandCopy(command string) *CommandCopy {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return NewPBCopy()
	}
	return &CommandCopy{name: fields[0], args: fields[1:]}
}

// NewPBCopy returns a clipboard backed by the macOS pbcopy command.
func NewPBCopy() *CommandCopy {
	return &CommandCopy{name: "pbcopy"}
}

// Copy writes content to the system clipboard.
func (c *CommandCopy) Copy(content string) error {
	cmd := exec.Command(c.name, c.args...)
	cmd.Stdin = strings.NewReader(content)
	return cmd.Run()
}
