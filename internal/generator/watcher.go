package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/routegen/csimple/internal/logging"
)

// Watcher reruns generation whenever route sources change. It watches every
// configured source root recursively and debounces bursts of events into a
// single run.
type Watcher struct {
	gen          *Generator
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	log          zerolog.Logger
}

// NewWatcher creates a watcher over the generator's source roots. Roots that
// do not exist are skipped, matching the scanner's behavior.
func NewWatcher(gen *Generator) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		gen:          gen,
		watcher:      fsw,
		debounceTime: 500 * time.Millisecond,
		log:          logging.Logger("watcher"),
	}

	for _, root := range gen.scanner.Roots() {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		if err := w.addDirectoriesRecursively(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Close releases the underlying file watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Watch blocks until ctx is cancelled, running the generator after each
// debounced burst of changes. A failed run is logged and the watch
// continues: the next source edit retriggers generation.
func (w *Watcher) Watch(ctx context.Context) error {
	var debounceTimer *time.Timer
	runCh := make(chan struct{}, 1)
	changes := 0

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.shouldProcessEvent(event) {
				continue
			}
			changes++

			// new directories must join the watch before their
			// contents change
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						w.log.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
				}
			}

			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(w.debounceTime, func() {
				select {
				case runCh <- struct{}{}:
				default:
				}
			})

		case <-runCh:
			w.log.Info().Int("changes", changes).Msg("route sources changed, regenerating")
			changes = 0
			if _, err := w.gen.Run(ctx); err != nil {
				w.log.Error().Err(err).Msg("generation failed")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("file watcher error")
		}
	}
}

// shouldProcessEvent keeps only events on candidate route sources, ignoring
// anything under the output directories so the watcher never triggers on its
// own writes.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if underDir(event.Name, w.gen.cfg.OutputDir) || underDir(event.Name, w.gen.cfg.OutputResourceDir) {
		return false
	}

	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".java":
		return w.gen.cfg.IncludeJava
	case ".xml":
		return w.gen.cfg.IncludeXML
	case "":
		// directory events keep the watch tree current
		info, err := os.Stat(event.Name)
		return err == nil && info.IsDir()
	}
	return false
}

func underDir(path, dir string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// addDirectoriesRecursively adds all directories in the tree to the watcher.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			w.log.Warn().Err(err).Str("path", path).Msg("error accessing path")
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			w.log.Warn().Err(err).Str("dir", path).Msg("failed to watch directory")
		}
		return nil
	})
}
