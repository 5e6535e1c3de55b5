package obs

import (
	"runtime/debug"
	"time"

	"github.com/btcsuite/btclog"
)

// HandlePanic recovers a panic, logs it along with a stack trace, and lets
// the goroutine die quietly instead of taking the process down. Used for
// fire-and-forget background goroutines (Bitget's two leverage calls,
// launched through GoroutineWrapperFunc) that must never be allowed to
// crash the gateway.
func HandlePanic(log btclog.Logger) {
	err := recover()
	if err == nil {
		return
	}
	log.Criticalf("recovered panic: %+v", err)
	log.Criticalf("stack trace: %s", debug.Stack())
}

// GoroutineWrapperFunc returns a launcher that runs f in a new goroutine
// with HandlePanic wired in as its deferred recover.
func GoroutineWrapperFunc(log btclog.Logger) func(f func()) {
	return func(f func()) {
		go func() {
			defer HandlePanic(log)
			f()
		}()
	}
}

// AfterFuncWrapperFunc returns a time.AfterFunc wrapper that recovers panics
// in the fired function the same way GoroutineWrapperFunc does.
func AfterFuncWrapperFunc(log btclog.Logger) func(d time.Duration, f func()) *time.Timer {
	return func(d time.Duration, f func()) *time.Timer {
		return time.AfterFunc(d, func() {
			defer HandlePanic(log)
			f()
		})
	}
}
