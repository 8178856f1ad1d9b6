package log

import (
	"sync"
	"testing"

	"go.uber.org/zap"
)

func TestInit(t *testing.T) {
	for _, debug := range []bool{true, false} {
		if err := Init(debug); err != nil {
			t.Fatalf("Init(%v) failed: %v", debug, err)
		}
		if GetSugaredLogger() == nil {
			t.Fatal("Expected a logger after Init")
		}
	}
	Infow("logger initialised", "component", "test")
	Named("sizing").Debugw("named logger works")
	Sync()
}

func TestGetSugaredLogger_ConcurrentFirstUse(t *testing.T) {
	mu.Lock()
	log, baseLogger = nil, nil
	mu.Unlock()

	const workers = 16
	loggers := make(chan *zap.SugaredLogger, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Named("api").Debugw("concurrent first use")
			loggers <- GetSugaredLogger()
		}()
	}
	wg.Wait()
	close(loggers)

	first := GetSugaredLogger()
	for l := range loggers {
		if l != first {
			t.Fatal("Expected every goroutine to share one lazily created logger")
		}
	}
}
