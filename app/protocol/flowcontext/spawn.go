package flowcontext

import "runtime/debug"

// spawn runs f in its own goroutine, recovering and logging any panic under
// name instead of bringing down the process.
func spawn(name string, f func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Criticalf("Fatal error in goroutine %s: %s\nStack trace: %s", name, r, debug.Stack())
			}
		}()
		f()
	}()
}
