package workspace

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher rechecks documents when they change on disk and hands every new
// report to a callback. The report is nil if the file could not be read.
type Watcher struct {
	workspace *Workspace
	watcher   *fsnotify.Watcher
	onReport  func(*Report, error)
	stopCh    chan struct{}
	done      chan struct{}
}

func NewWatcher(ws *Workspace, onReport func(*Report, error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		workspace: ws,
		watcher:   fw,
		onReport:  onReport,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// Start watches every directory below the workspace root.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addTree(w.workspace.RootDir()); err != nil {
		w.watcher.Close()
		return err
	}
	go w.run(ctx)
	return nil
}

// Stop ends watching and waits for the event loop to finish.
func (w *Watcher) Stop() {
	close(w.stopCh)
	<-w.done
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer w.watcher.Close()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watch: %s", err)
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ctx, event)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if err := w.addTree(event.Name); err != nil {
			log.Debugf("watch %s: %s", event.Name, err)
		}
	}
	if filepath.Ext(event.Name) != Extension {
		return
	}

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		log.Debugf("%s removed", event.Name)
		w.workspace.RemoveFile(event.Name)
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		log.Debugf("%s changed", event.Name)
		report, err := w.workspace.ScanFile(ctx, event.Name)
		if report == nil && err == nil {
			return
		}
		w.onReport(report, err)
	}
}
