package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a file must stay quiet before its change is reported.
// Editors often save in several writes.
const settle = 100 * time.Millisecond

type ChangeKind int

const (
	// CatalogChanged: a stats file was written. Name is its base name.
	CatalogChanged ChangeKind = iota
	// ScriptChanged: an enemy script was written. Name is the script name
	// as referenced by a kind's script field.
	ScriptChanged
)

func (k ChangeKind) String() string {
	if k == ScriptChanged {
		return "script"
	}
	return "catalog"
}

// Change is one reloadable prefab file that changed on disk.
type Change struct {
	Kind ChangeKind
	Name string
	Path string
}

// Classify maps a path onto the prefab it backs. ok is false for files
// that neither the catalog nor the script cache read.
func Classify(path string) (c Change, ok bool) {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	switch ext {
	case ".yaml", ".yml":
		return Change{Kind: CatalogChanged, Name: base, Path: path}, true
	case ".tengo":
		return Change{Kind: ScriptChanged, Name: strings.TrimSuffix(base, filepath.Ext(base)), Path: path}, true
	}
	return Change{}, false
}

// Watcher turns file writes under a set of directories into Changes.
// Bursts of writes to one file are coalesced into a single Change sent
// once the file settles.
type Watcher struct {
	fs      *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]Change)
	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			c, ok := Classify(event.Name)
			if !ok {
				continue
			}
			pending[c.Path] = c
			timer.Reset(settle)
		case <-timer.C:
			for path, c := range pending {
				select {
				case w.Changes <- c:
				case <-w.closeCh:
					return
				}
				delete(pending, path)
			}
		case err, ok := <-w.fs.Errors:
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
