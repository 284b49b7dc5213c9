package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevantEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		skip string
		want bool
	}{
		{name: "write", ev: fsnotify.Event{Name: "in/pdfs/a.pdf", Op: fsnotify.Write}, want: true},
		{name: "create", ev: fsnotify.Event{Name: "in/task.json", Op: fsnotify.Create}, want: true},
		{name: "remove", ev: fsnotify.Event{Name: "in/pdfs/a.pdf", Op: fsnotify.Remove}, want: true},
		{name: "chmod only", ev: fsnotify.Event{Name: "in/pdfs/a.pdf", Op: fsnotify.Chmod}, want: false},
		{name: "write and chmod", ev: fsnotify.Event{Name: "in/a.pdf", Op: fsnotify.Write | fsnotify.Chmod}, want: true},
		{name: "hidden file", ev: fsnotify.Event{Name: "in/.task.json.swp", Op: fsnotify.Write}, want: false},
		{name: "report itself", ev: fsnotify.Event{Name: "out/r.json", Op: fsnotify.Write}, skip: "out/r.json", want: false},
		{name: "other file with skip set", ev: fsnotify.Event{Name: "in/a.pdf", Op: fsnotify.Write}, skip: "out/r.json", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevantEvent(tt.ev, tt.skip))
		})
	}
}

func TestWatchDirs(t *testing.T) {
	dir := t.TempDir()
	docs := filepath.Join(dir, "pdfs")
	require.NoError(t, os.Mkdir(docs, 0o755))
	taskPath := filepath.Join(dir, "task.json")

	got := watchDirs([]string{taskPath, docs, "", filepath.Join(dir, "other.json")})

	assert.Equal(t, []string{dir, docs}, got)
}

func TestWatchLoop_Debounces(t *testing.T) {
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	var runs atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, events, errs, 100*time.Millisecond,
			func(fsnotify.Event) bool { return true },
			func() { runs.Add(1) })
	}()

	for range 5 {
		events <- fsnotify.Event{Name: "a.pdf", Op: fsnotify.Write}
	}
	errs <- errors.New("overflow")

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	events <- fsnotify.Event{Name: "b.pdf", Op: fsnotify.Create}
	assert.Eventually(t, func() bool { return runs.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatchLoop_IgnoresIrrelevant(t *testing.T) {
	events := make(chan fsnotify.Event)
	var runs atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- watchLoop(context.Background(), events, nil, 5*time.Millisecond,
			func(fsnotify.Event) bool { return false },
			func() { runs.Add(1) })
	}()

	events <- fsnotify.Event{Name: "a.pdf", Op: fsnotify.Write}
	time.Sleep(30 * time.Millisecond)
	close(events)

	assert.NoError(t, <-done)
	assert.Zero(t, runs.Load())
}
