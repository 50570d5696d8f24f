package cpu

import (
	"runtime"
	"testing"
)

func TestAvailable(t *testing.T) {
	n := Available()
	if n < 1 {
		t.Fatalf("expected at least one CPU, got %d", n)
	}
	if n > runtime.NumCPU() {
		t.Errorf("available CPUs %d exceed runtime.NumCPU() %d", n, runtime.NumCPU())
	}
}

func TestSetupWorkerAffinity(t *testing.T) {
	done := make(chan struct{})

	// Run on a throwaway goroutine so the pinned thread does not leak into
	// other tests.
	go func() {
		defer close(done)
		for _, id := range []int{0, 1, runtime.NumCPU() + 3} {
			release := SetupWorkerAffinity(id)
			release()
		}
	}()

	<-done
}
