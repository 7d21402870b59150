package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/micromarket/pkg/queue"
)

var (
	echoCalls    atomic.Int32
	failAttempts atomic.Int32
)

type echoJob struct {
	Val string
}

func (j *echoJob) Handle() error {
	echoCalls.Add(1)
	return nil
}

type failJob struct{}

func (j *failJob) Handle() error {
	failAttempts.Add(1)
	return errors.New("always fails")
}

type strayJob struct{ Val string }

func (j *strayJob) Handle() error { return nil }

func init() {
	// Start workers so jobs actually get processed in tests.
	queue.StartWorkers(context.Background(), 2)

	queue.Register("*queue_test.echoJob", func() queue.Job { return &echoJob{} })
	queue.Register("*queue_test.failJob", func() queue.Job { return &failJob{} })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestDispatchAndProcess(t *testing.T) {
	before := echoCalls.Load()

	if err := queue.Dispatch(&echoJob{Val: "hello"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	waitFor(t, func() bool { return echoCalls.Load() > before })
}

func TestFailedJobIsRetriedAndRecorded(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	before := len(queue.FailedJobs())

	if err := queue.Dispatch(&failJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	waitFor(t, func() bool { return len(queue.FailedJobs()) > before })

	failed := queue.FailedJobs()
	last := failed[len(failed)-1]
	if last.Attempts != 1 {
		t.Errorf("expected 1 recorded attempt, got %d", last.Attempts)
	}
	if last.Err == nil {
		t.Error("failed job must carry its error")
	}
	if failAttempts.Load() == 0 {
		t.Error("handler was never invoked")
	}
}

func TestUnregisteredJobTypeIsDropped(t *testing.T) {
	// No factory registered for strayJob, so a worker must log and skip it
	// without dying.
	if err := queue.Dispatch(&strayJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	before := echoCalls.Load()
	if err := queue.Dispatch(&echoJob{Val: "still works"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	waitFor(t, func() bool { return echoCalls.Load() > before })
}
