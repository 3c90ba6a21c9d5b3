// Package opener reveals a path in the platform's native file manager.
package opener

import (
	"fmt"
	"os/exec"
)

// Opener dispatches the native file manager for a path and returns without waiting for it.
type Opener interface {
	Open(path string) error
}

// Command launches an external program with the target path as its sole argument.
type Command struct {
	Name string
}

// New returns the opener for the platform this binary was built for.
func New() *Command {
	return &Command{Name: defaultCommand}
}

// Open starts the file manager and reaps it in the background.
func (c *Command) Open(path string) error {
	cmd := exec.Command(c.Name, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", c.Name, err)
	}
	go cmd.Wait()
	return nil
}

// Func adapts a function to the Opener interface.
type Func func(path string) error

func (f Func) Open(path string) error {
	return f(path)
}
