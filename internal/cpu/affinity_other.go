//go:build !linux

package cpu

import "runtime"

// Available returns the number of logical CPUs usable by this process.
func Available() int {
	return runtime.NumCPU()
}

// SetupWorkerAffinity locks the goroutine to an OS thread.
// CPU pinning is only implemented on Linux.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()

	return func() {
		runtime.UnlockOSThread()
	}
}
