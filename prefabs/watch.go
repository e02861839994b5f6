package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// ChangeKind says what a changed file belongs to.
type ChangeKind int

const (
	ChangeTuning ChangeKind = iota
	ChangeLevel
)

func (k ChangeKind) String() string {
	if k == ChangeLevel {
		return "level"
	}
	return "tuning"
}

type Change struct {
	Path string
	Kind ChangeKind
}

// Watcher reports edits to tuning and level files. Bursts of writes to the
// same file are collapsed into one Change.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once

	mu   sync.Mutex
	dirs map[string]ChangeKind
}

func NewWatcher() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		dirs:    make(map[string]ChangeKind),
	}
	go watcher.run()
	return watcher, nil
}

// Watch adds dir. Files directly inside it are reported with kind.
func (w *Watcher) Watch(dir string, kind ChangeKind) error {
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.mu.Lock()
	w.dirs[filepath.Clean(dir)] = kind
	w.mu.Unlock()
	return nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll drains pending changes and errors without blocking.
func (w *Watcher) Poll() ([]Change, []error) {
	var changes []Change
	var errs []error
	for {
		select {
		case c := <-w.Events:
			changes = append(changes, c)
		case err := <-w.Errors:
			errs = append(errs, err)
		default:
			return changes, errs
		}
	}
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isSpecFile(event.Name) && !isScriptFile(event.Name) && !isImageFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now

			w.mu.Lock()
			kind := w.dirs[filepath.Dir(event.Name)]
			w.mu.Unlock()

			select {
			case w.Events <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

func isImageFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".png"
}
