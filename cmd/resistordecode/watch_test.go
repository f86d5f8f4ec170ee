package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resistor-reader/internal/bands"
	"resistor-reader/internal/pipeline"
)

// lockedBuffer lets the test read output while the watch loop writes it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchLoopDecodesNewImages(t *testing.T) {
	dir := t.TempDir()
	staging := t.TempDir()

	reader, err := pipeline.New(pipeline.DefaultConfig())
	require.NoError(t, err)

	w, err := newWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	var out lockedBuffer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, w, reader, newPrinter(&out, false, false))
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0o644))

	// Rename into place so the image shows up complete in a single event.
	src := writeResistor(t, staging, "r.png", bands.Yellow, bands.Violet, bands.Red, bands.Gold)
	dst := filepath.Join(dir, "r.png")
	require.NoError(t, os.Rename(src, dst))

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "4700 Ω")
	}, 10*time.Second, 20*time.Millisecond)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{dst + ": 4700 Ω ±5%"}, lines)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop after cancel")
	}
}

func TestWatchMissingDir(t *testing.T) {
	reader, err := pipeline.New(pipeline.DefaultConfig())
	require.NoError(t, err)

	var out bytes.Buffer
	err = watch(context.Background(), reader, filepath.Join(t.TempDir(), "missing"), newPrinter(&out, false, false))
	assert.ErrorContains(t, err, "failed to watch")
}
