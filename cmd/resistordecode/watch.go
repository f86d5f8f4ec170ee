package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"resistor-reader/internal/log"
	"resistor-reader/internal/pipeline"
)

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true, ".bmp": true,
}

func isImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// watch decodes every image file created or rewritten in dir until ctx is
// done. Events are handled one at a time so output lines never interleave.
func watch(ctx context.Context, reader *pipeline.Reader, dir string, out *printer) error {
	w, err := newWatcher(dir)
	if err != nil {
		return err
	}
	defer w.Close()

	log.Infof("watching %s for images", dir)
	return watchLoop(ctx, w, reader, out)
}

func newWatcher(dir string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch: %w", err)
	}
	return w, nil
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, reader *pipeline.Reader, out *printer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !isImage(ev.Name) {
				continue
			}
			out.print(decodeFile(reader, ev.Name), true)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch error: %v", err)
		}
	}
}
