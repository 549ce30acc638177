package pointview

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads a config file whenever it changes on disk and
// publishes the parsed result on Updates. Files that fail to load are logged
// and skipped.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan Config
	done    chan struct{}
}

// WatchConfig starts watching path. The directory is watched rather than the
// file so editors that save by rename are still seen.
func WatchConfig(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("could not watch %s: %w", filepath.Dir(abs), err)
	}

	cw := &ConfigWatcher{
		path:    abs,
		watcher: w,
		updates: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

func (cw *ConfigWatcher) Updates() <-chan Config {
	return cw.updates
}

func (cw *ConfigWatcher) run() {
	defer close(cw.updates)
	for {
		select {
		case <-cw.done:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				log.Printf("Config reload failed: %v", err)
				continue
			}
			cw.publish(cfg)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}

// publish keeps only the newest config when the reader falls behind.
func (cw *ConfigWatcher) publish(cfg Config) {
	for {
		select {
		case cw.updates <- cfg:
			return
		case <-cw.done:
			return
		default:
		}
		select {
		case <-cw.updates:
		default:
		}
	}
}

func (cw *ConfigWatcher) Close() error {
	select {
	case <-cw.done:
		return nil
	default:
	}
	close(cw.done)
	return cw.watcher.Close()
}
