package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads the config file when it changes on disk and hands
// each successfully parsed revision to the callback. Editors replace
// files by rename, so the parent directory is watched rather than the
// file itself.
type Watcher struct {
	path     string
	fs       *fsnotify.Watcher
	onChange func(*Config)
	log      zerolog.Logger
	done     chan struct{}
}

// Watch starts watching path. The callback runs on the watcher's own
// goroutine; callers post it onto their loop as needed.
func Watch(path string, log zerolog.Logger, onChange func(*Config)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}
	w := &Watcher{
		path:     path,
		fs:       fs,
		onChange: onChange,
		log:      log,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.log.Debug().Str("op", event.Op.String()).Str("file", event.Name).
				Msg("config change detected")
			cfg, err := LoadFromPath(w.path)
			if err != nil {
				w.log.Warn().Err(err).Msg("failed to reload config")
				continue
			}
			w.onChange(cfg)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("config watcher error")
		case <-w.done:
			return
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
