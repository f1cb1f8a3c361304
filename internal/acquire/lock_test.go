package acquire

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestWithFileLockRunsCallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.guard")
	ran := false
	if err := withFileLock(path, func() error {
		ran = true
		return nil
	}); err != nil {
		t.Fatalf("withFileLock: %v", err)
	}
	if !ran {
		t.Fatalf("expected callback to run")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected guard file created: %v", err)
	}
}

func TestWithFileLockPropagatesCallbackError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.guard")
	wantErr := errors.New("boom")
	err := withFileLock(path, func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected callback error, got %v", err)
	}
}

func TestWithFileLockRequiresPathAndCallback(t *testing.T) {
	if err := withFileLock("", func() error { return nil }); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if err := withFileLock(filepath.Join(t.TempDir(), "g"), nil); err == nil {
		t.Fatalf("expected error for nil callback")
	}
}

func TestWithFileLockSerializesCallers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.guard")
	active := 0
	maxActive := 0
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := withFileLock(path, func() error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Errorf("withFileLock: %v", err)
			}
		}()
	}
	wg.Wait()
	if maxActive != 1 {
		t.Fatalf("expected exclusive callbacks, saw %d concurrent", maxActive)
	}
}
