//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Available returns the number of CPUs this process may run on.
// It honors the scheduler affinity mask, so a process started under taskset
// or a cgroup cpuset reports the restricted count.
func Available() int {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err == nil {
		if n := mask.Count(); n > 0 {
			return n
		}
	}
	return runtime.NumCPU()
}

// pinToCore pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread().
//
// cpuID outside [0, runtime.NumCPU()-1] wraps around.
func pinToCore(cpuID int) (int, error) {
	numCPU := runtime.NumCPU()
	if cpuID < 0 || cpuID >= numCPU {
		cpuID = cpuID % numCPU
		if cpuID < 0 {
			cpuID += numCPU
		}
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return 0, err
	}

	return cpuID, nil
}

// SetupWorkerAffinity locks the calling goroutine to an OS thread and pins
// that thread to the core workerID maps onto.
// Returns a cleanup function that should be deferred; it restores the
// thread's previous mask before handing the thread back to the runtime.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()

	var prev unix.CPUSet
	restore := unix.SchedGetaffinity(0, &prev) == nil
	_, _ = pinToCore(workerID)

	return func() {
		if restore {
			_ = unix.SchedSetaffinity(0, &prev)
		}
		runtime.UnlockOSThread()
	}
}
