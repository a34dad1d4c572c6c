// Package watch reports changes to task files.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long a file must stay quiet before a change is
// reported.
const DefaultDelay = 100 * time.Millisecond

// FileWatcher calls onChange once per burst of writes to a watched file.
// Files are watched through their parent directory so that editors which
// save by renaming a temporary file over the original are noticed too.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	dirs     map[string]int
	onChange func(string)
	delay    time.Duration
	logger   *log.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	done   chan struct{}
	once   sync.Once
}

// NewFileWatcher starts a watcher. A zero delay means DefaultDelay and a
// nil logger discards watch errors.
func NewFileWatcher(delay time.Duration, logger *log.Logger, onChange func(string)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if delay <= 0 {
		delay = DefaultDelay
	}

	fw := &FileWatcher{
		watcher:  watcher,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
		onChange: onChange,
		delay:    delay,
		logger:   logger,
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}

	go fw.watch()
	return fw, nil
}

func (fw *FileWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, exists := fw.files[absPath]; exists {
		return nil
	}

	dir := filepath.Dir(absPath)
	if fw.dirs[dir] == 0 {
		if err := fw.watcher.Add(dir); err != nil {
			return err
		}
	}

	fw.dirs[dir]++
	fw.files[absPath] = struct{}{}
	return nil
}

func (fw *FileWatcher) RemoveFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, exists := fw.files[absPath]; !exists {
		return nil
	}

	delete(fw.files, absPath)
	if timer, ok := fw.timers[absPath]; ok {
		timer.Stop()
		delete(fw.timers, absPath)
	}

	dir := filepath.Dir(absPath)
	fw.dirs[dir]--
	if fw.dirs[dir] > 0 {
		return nil
	}
	delete(fw.dirs, dir)
	return fw.watcher.Remove(dir)
}

// Files returns the watched paths in no particular order.
func (fw *FileWatcher) Files() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	files := make([]string, 0, len(fw.files))
	for f := range fw.files {
		files = append(files, f)
	}
	return files
}

func (fw *FileWatcher) watch() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				fw.schedule(filepath.Clean(event.Name))
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			if fw.logger != nil {
				fw.logger.Warn("file watcher error", "err", err)
			}

		case <-fw.done:
			return
		}
	}
}

// schedule restarts the quiet period of name.
func (fw *FileWatcher) schedule(name string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, watching := fw.files[name]; !watching {
		return
	}

	if timer, exists := fw.timers[name]; exists {
		timer.Stop()
	}

	fw.timers[name] = time.AfterFunc(fw.delay, func() {
		fw.mu.Lock()
		_, watching := fw.files[name]
		delete(fw.timers, name)
		fw.mu.Unlock()

		select {
		case <-fw.done:
			return
		default:
		}

		if watching && fw.onChange != nil {
			if fw.logger != nil {
				fw.logger.Debug("file changed", "path", name)
			}
			fw.onChange(name)
		}
	})
}

func (fw *FileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)

		fw.mu.Lock()
		for name, timer := range fw.timers {
			timer.Stop()
			delete(fw.timers, name)
		}
		fw.mu.Unlock()

		err = fw.watcher.Close()
	})
	return err
}
