package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"

	"github.com/example/datedir/internal/cli"
	"github.com/example/datedir/internal/datedir/app"
)

var exitFunc = os.Exit

// The tray event loop must own the main OS thread on some platforms.
func init() {
	runtime.LockOSThread()
}

func main() {
	exitFunc(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := cli.Backend{Connect: app.Connect, Run: app.RunDaemon}
	cmd := cli.NewRootCommand(backend, cli.NewPromptUI(), stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if cli.IsCancelled(err) {
			fmt.Fprintln(stderr, "Cancelled.")
			return 1
		}
		fmt.Fprintf(stderr, "%s %v\n", color.RedString("Error:"), err)
		return 1
	}
	return 0
}
