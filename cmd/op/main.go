// Command op keeps a list of things to do, each covered by the smaller steps
// it waits on, and answers "what can I do next?".
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/calvinalkan/onpurpose/internal/cli"
)

func main() {
	// Interrupts cancel the command; queued writes still land before exit.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, environ(), interrupts))
}

// environ returns the process environment; config lookup reads the XDG dirs and HOME.
func environ() map[string]string {
	env := map[string]string{}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	return env
}
