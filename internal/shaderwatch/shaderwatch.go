// Package shaderwatch reports changes to WGSL files in a directory.
//
// Notifications are coalesced: however many files change between two
// checks, the frame loop sees one signal, and reloads between frames.
package shaderwatch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/fundamentals"
)

// Ext is the extension of watched files.
const Ext = ".wgsl"

// Watcher watches one directory.
type Watcher struct {
	dir     string
	fsw     *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// New starts watching dir.
func New(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shaderwatch: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("shaderwatch: watch %s: %w", dir, err)
	}
	w := &Watcher{
		dir:     dir,
		fsw:     fsw,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	fundamentals.Logger().Info("shaderwatch: watching", "dir", dir)
	return w, nil
}

// Changed receives a value after one or more shader files changed.
func (w *Watcher) Changed() <-chan struct{} { return w.changed }

// Pending reports, without blocking, whether a change arrived since the
// last call.
func (w *Watcher) Pending() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

func (w *Watcher) run() {
	defer w.wg.Done()
	log := fundamentals.Logger()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			log.Debug("shaderwatch: change", "file", filepath.Base(ev.Name), "op", ev.Op.String())
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn("shaderwatch: watcher error", "err", err)
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(ev.Name), Ext) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}
