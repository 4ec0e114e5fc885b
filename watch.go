package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a single file. It watches the directory
// of the file, so it keeps working when editors replace the file
// instead of writing it in place.
type Watcher struct {
	// C receives the absolute path of the file each time it is
	// written, created, removed or renamed away.
	C <-chan string

	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching the file at path. Caller must call Close
// to release it.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch: %s: %w", abs, err)
	}

	c := make(chan string)
	w := &Watcher{
		C:       c,
		path:    abs,
		watcher: fw,
		done:    make(chan struct{}),
	}
	go w.run(c)
	return w, nil
}

// run forwards the events of the file until Close.
func (w *Watcher) run(c chan<- string) {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case c <- w.path:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %s: %v", w.path, err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
