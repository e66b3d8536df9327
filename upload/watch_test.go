package upload

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherImportsSettledFilesOnce(t *testing.T) {
	dir := t.TempDir()
	sink := &countingSink{}
	w := NewWatcher(dir, NewImporter(sink))

	path := writeFile(t, dir, "a.png", pngBytes(t))
	start := time.Now()
	w.touch(path, start)

	w.flush(start.Add(w.settle / 2))
	assert.Zero(t, sink.count(), "imported before settling")

	w.flush(start.Add(w.settle))
	assert.Equal(t, 1, sink.count())

	// Later writes to an imported file are ignored.
	w.touch(path, start.Add(time.Second))
	w.flush(start.Add(time.Minute))
	assert.Equal(t, 1, sink.count())
}

func TestWatcherSkipsNonImages(t *testing.T) {
	dir := t.TempDir()
	sink := &countingSink{}
	w := NewWatcher(dir, NewImporter(sink))

	w.touch(writeFile(t, dir, "notes.txt", []byte("hello")), time.Now())
	w.flush(time.Now().Add(time.Minute))
	assert.Zero(t, sink.count())
}

func TestWatcherRun(t *testing.T) {
	dir := t.TempDir()
	sink := &countingSink{}
	w := NewWatcher(dir, NewImporter(sink))
	w.settle = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
	writeFile(t, dir, "a.png", pngBytes(t))

	require.Eventually(t, func() bool { return sink.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcherMissingDir(t *testing.T) {
	w := NewWatcher("/nonexistent/photos", NewImporter(&countingSink{}))
	assert.Error(t, w.Run(context.Background()))
}
