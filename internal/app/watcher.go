// watcher.go reloads the layout document and pane files when they change on
// disk.
//
// fsnotify reports events per directory, and editors usually save through a
// temp file and rename, so the watcher subscribes to the parent directory of
// every file of interest and filters events by path. Bursts of events are
// coalesced by a debouncer; after FileWatchDebounce of quiet the set of
// changed paths is delivered to the Update loop as a filesChangedMsg.
package app

import (
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// filesChangedMsg lists watched files that changed since the last message.
type filesChangedMsg struct {
	paths []string
}

// watchErrorMsg reports a watcher failure. Watching continues.
type watchErrorMsg struct {
	err error
}

var errWatcherClosed = errors.New("watcher closed")

// fileWatcher delivers debounced change notifications for a set of files.
type fileWatcher struct {
	fs       *fsnotify.Watcher
	debounce *changeDebouncer
	out      chan tea.Msg
	done     chan struct{}
	once     sync.Once

	mu      sync.Mutex
	targets map[string]bool
	dirs    map[string]bool
}

// newFileWatcher starts watching the given files.
func newFileWatcher(paths []string, delay time.Duration) (*fileWatcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &fileWatcher{
		fs:      fs,
		out:     make(chan tea.Msg),
		done:    make(chan struct{}),
		targets: map[string]bool{},
		dirs:    map[string]bool{},
	}
	w.debounce = newChangeDebouncer(delay, w.deliver)
	if err := w.setTargets(paths); err != nil {
		appLog.Warn("watch layout files", "error", err)
	}
	go w.run()
	return w, nil
}

// setTargets replaces the watched file set. Directories are only ever added;
// events for files no longer targeted are ignored.
func (w *fileWatcher) setTargets(paths []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.targets = map[string]bool{}
	var errs []error
	for _, path := range paths {
		if path == "" {
			continue
		}
		path = filepath.Clean(path)
		w.targets[path] = true
		dir := filepath.Dir(path)
		if w.dirs[dir] {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			errs = append(errs, err)
			continue
		}
		w.dirs[dir] = true
	}
	return errors.Join(errs...)
}

func (w *fileWatcher) watching(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.targets[filepath.Clean(path)]
}

func (w *fileWatcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod || !w.watching(event.Name) {
				continue
			}
			w.debounce.add(filepath.Clean(event.Name))
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.send(watchErrorMsg{err: err})
		}
	}
}

func (w *fileWatcher) deliver(paths []string) {
	w.send(filesChangedMsg{paths: paths})
}

func (w *fileWatcher) send(msg tea.Msg) {
	select {
	case w.out <- msg:
	case <-w.done:
	}
}

// wait returns a Cmd that blocks until the next notification. Update must
// issue it again after every delivered message.
func (w *fileWatcher) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.out:
			return msg
		case <-w.done:
			return watchErrorMsg{err: errWatcherClosed}
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *fileWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.debounce.cancel()
		err = w.fs.Close()
	})
	return err
}

// changeDebouncer collects changed paths and fires once the stream has been
// quiet for the configured delay. Only the most recently scheduled timer may
// fire; a timer that already started when it was superseded sees a stale
// sequence number and does nothing.
type changeDebouncer struct {
	delay time.Duration
	fire  func([]string)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	pending map[string]struct{}
}

func newChangeDebouncer(delay time.Duration, fire func([]string)) *changeDebouncer {
	if delay <= 0 {
		delay = FileWatchDebounce
	}
	return &changeDebouncer{delay: delay, fire: fire, pending: map[string]struct{}{}}
}

func (d *changeDebouncer) add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending[path] = struct{}{}
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		paths := d.take(seq)
		if len(paths) > 0 {
			d.fire(paths)
		}
	})
}

func (d *changeDebouncer) take(seq uint64) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq {
		return nil
	}
	d.timer = nil
	paths := make([]string, 0, len(d.pending))
	for path := range d.pending {
		paths = append(paths, path)
	}
	d.pending = map[string]struct{}{}
	slices.Sort(paths)
	return paths
}

func (d *changeDebouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.pending = map[string]struct{}{}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// handleFilesChanged reloads the layout when the document changed and
// re-renders panes whose file changed.
func (m *Model) handleFilesChanged(msg filesChangedMsg) tea.Cmd {
	var cmds []tea.Cmd
	layoutChanged := false
	for _, path := range msg.paths {
		if path == filepath.Clean(m.layoutPath) {
			layoutChanged = true
			continue
		}
		for _, leaf := range m.root.leaves() {
			if leaf.file != "" && filepath.Clean(leaf.file) == path {
				cmds = append(cmds, m.invalidatePane(leaf))
			}
		}
	}
	if layoutChanged {
		cmds = append(cmds, m.reloadLayout())
	} else if len(cmds) > 0 {
		m.status = "Pane content refreshed"
	}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

// watchedPaths is the layout document plus every pane file.
func (m *Model) watchedPaths() []string {
	return append([]string{m.layoutPath}, m.root.files()...)
}
