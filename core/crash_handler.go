package core

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/color-cycle/terminal"
)

// HandleCrash resets the terminal, prints the panic value and stack trace, and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	terminal.EmergencyReset(os.Stdout)

	os.Stdout.Sync()
	os.Stderr.Sync()

	stack := debug.Stack()
	log.Printf("crash: %v\n%s", r, stack)

	// \r\n in case raw mode could not be left
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCOLOR-CYCLE CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", stack)
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so a crash never leaves the terminal in raw mode
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
