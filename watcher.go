package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pipe01/tagstream/internal/workspace"
)

type Watcher struct {
	mu                          sync.Mutex
	watchingDirs, watchingFiles map[string]struct{}

	ws      *workspace.Workspace
	watcher *fsnotify.Watcher
}

func NewWatcher(ws *workspace.Workspace) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watchingDirs:  make(map[string]struct{}),
		watchingFiles: make(map[string]struct{}),
		ws:            ws,
		watcher:       watcher,
	}
	go w.eventLoop()

	return w, nil
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// WatchFile watches the file's directory rather than the file itself, editors
// often replace files on save instead of writing to them.
func (w *Watcher) WatchFile(path string) error {
	fullPath, _ := filepath.Abs(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.watchingFiles[fullPath] = struct{}{}

	dir := filepath.Dir(fullPath)
	if _, ok := w.watchingDirs[dir]; ok {
		return nil
	}

	err := w.watcher.Add(dir)
	if err != nil {
		return err
	}

	w.watchingDirs[dir] = struct{}{}

	return nil
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			fname, _ := filepath.Abs(event.Name)

			w.mu.Lock()
			_, watched := w.watchingFiles[fname]
			w.mu.Unlock()

			if !watched {
				continue
			}

			w.fileModified(fname)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) fileModified(fullPath string) {
	log.Noticef("file %q modified, tokenizing...", filepath.Base(fullPath))

	w.ws.Forget(fullPath)

	_, err := tokenizeFile(w.ws, fullPath, os.Stdout, os.Stderr)
	if err != nil {
		log.Errorf("failed to tokenize file %q: %s", fullPath, err)
	}
}
