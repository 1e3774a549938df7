// Package core holds process-wide crash handling shared by hosts and background work
package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	cleanupMu sync.Mutex
	cleanup   func()
	exit      = os.Exit
)

// SetCrashCleanup registers fn to restore the display before a crash report is printed
// Hosts register their screen teardown; nil clears it
func SetCrashCleanup(fn func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanup = fn
}

// HandleCrash restores the display, prints the stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	cleanupMu.Lock()
	fn := cleanup
	cleanup = nil
	cleanupMu.Unlock()
	if fn != nil {
		fn()
	}

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Stderr.Sync()

	exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use instead of the go keyword so a background panic still restores the terminal
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
