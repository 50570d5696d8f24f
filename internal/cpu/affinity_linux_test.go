//go:build linux

package cpu

import (
	"runtime"
	"testing"
)

func TestPinToCoreWraps(t *testing.T) {
	numCPU := runtime.NumCPU()

	tests := []struct {
		name string
		id   int
		want int
	}{
		{"first core", 0, 0},
		{"wraps past last core", numCPU, 0},
		{"negative id", -1, numCPU - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan struct{})
			var got int
			var err error

			go func() {
				defer close(done)
				// Exiting while locked retires the pinned thread.
				runtime.LockOSThread()
				got, err = pinToCore(tt.id)
			}()
			<-done

			if err != nil {
				t.Skipf("sched_setaffinity not permitted here: %v", err)
			}
			if got != tt.want {
				t.Errorf("pinToCore(%d) = %d, want %d", tt.id, got, tt.want)
			}
		})
	}
}
