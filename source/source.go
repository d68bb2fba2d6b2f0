// Package source reads panorama images from files or URLs and watches
// local files for changes.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Editors write in bursts. A change is reported once the file is quiet for
// this long.
const DefaultSettle = 200 * time.Millisecond

func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Read reads a local file or downloads a URL.
func Read(source string) ([]byte, error) {
	if !IsURL(source) {
		return os.ReadFile(source)
	}
	res, err := http.Get(source)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: %s", source, res.Status)
	}
	return io.ReadAll(res.Body)
}

// Watcher calls OnChange with the new content of a file after it was
// written or replaced.
type Watcher struct {
	OnChange func(b []byte)
	Settle   time.Duration
	Logger   *slog.Logger
}

// Watch blocks until ctx is done. The parent directory is watched so that
// editors replacing the file are noticed.
func (w *Watcher) Watch(ctx context.Context, path string) error {
	log := w.Logger
	if log == nil {
		log = slog.Default()
	}
	settle := w.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	log = log.With("path", abs)
	log.Debug("watching")

	timer := time.NewTimer(settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != abs || !(e.Has(fsnotify.Write) || e.Has(fsnotify.Create)) {
				continue
			}
			timer.Reset(settle)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		case <-timer.C:
			b, err := os.ReadFile(abs)
			if err != nil {
				log.Warn("failed to read changed file", "error", err)
				continue
			}
			log.Info("file changed", "bytes", len(b))
			if w.OnChange != nil {
				w.OnChange(b)
			}
		}
	}
}
