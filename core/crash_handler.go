package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	restoreMu sync.Mutex
	restoreFn func()
)

// SetRestoreHook registers the function that returns the terminal to a sane state on crash
// Pass nil to clear. The hook runs at most once per crash
func SetRestoreHook(fn func()) {
	restoreMu.Lock()
	restoreFn = fn
	restoreMu.Unlock()
}

func restore() {
	restoreMu.Lock()
	fn := restoreFn
	restoreFn = nil
	restoreMu.Unlock()
	if fn != nil {
		fn()
	}
}

// exit is replaced in tests
var (
	exit   = os.Exit
	osExit = os.Exit
)

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	// Restore terminal first so the trace is readable
	restore()

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
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
