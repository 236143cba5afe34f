// Package serve is the development server: it serves the freshly built
// output tree from memory and rebuilds whenever the project changes on disk.
package serve

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/stuartgen/stuart"
	"github.com/stuartgen/stuart/vfs"
)

// Server rebuilds and serves a project directory.
type Server struct {
	// Dir is the project directory containing stuart.yml.
	Dir string
	// Addr is the listen address, e.g. ":6904".
	Addr string
	// Log receives build and rebuild events.  Defaults to the standard
	// logger.
	Log *logrus.Logger

	mu  sync.RWMutex
	out *vfs.OutputNode
}

// Run builds the project, starts watching it and serves until the listener
// fails.
func (s *Server) Run() error {
	if s.Log == nil {
		s.Log = logrus.StandardLogger()
	}

	if err := s.rebuild(); err != nil {
		return err
	}

	var watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := s.watch(watcher); err != nil {
		return err
	}
	go s.rebuildLoop(watcher)

	s.Log.WithField("addr", s.Addr).Info("serving")
	return http.ListenAndServe(s.Addr, s)
}

func (s *Server) rebuild() error {
	var start = time.Now()
	var project, err = stuart.BuildProject(s.Dir)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.out = project.Out
	s.mu.Unlock()

	s.Log.WithField("duration", time.Since(start).Round(time.Millisecond)).Info("build finished")
	return nil
}

// watch registers the manifest and every directory under content/ and
// static/.
func (s *Server) watch(watcher *fsnotify.Watcher) error {
	watcher.Add(filepath.Join(s.Dir, "stuart.yml"))

	for _, root := range []string{"content", "static"} {
		var dir = filepath.Join(s.Dir, root)
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		var err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// rebuildLoop coalesces change events and rebuilds.  Build failures are
// logged, not fatal; the previous output keeps serving.
func (s *Server) rebuildLoop(watcher *fsnotify.Watcher) {
	var timer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(100*time.Millisecond, func() {
				s.Log.Info("change detected, rebuilding")
				if err := s.rebuild(); err != nil {
					s.Log.WithError(err).Error("rebuild failed")
				}
				s.watch(watcher)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.Log.WithError(err).Warn("watch error")
		}
	}
}

// ServeHTTP resolves request paths against the in-memory output tree,
// honoring the extension-stripping URL shapes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	var out = s.out
	s.mu.RUnlock()
	if out == nil {
		http.Error(w, "no build available", http.StatusServiceUnavailable)
		return
	}

	var path = strings.Trim(r.URL.Path, "/")
	var candidates []string
	if path == "" {
		candidates = []string{"index.html"}
	} else {
		candidates = []string{path, path + ".html", path + "/index.html"}
	}

	for _, candidate := range candidates {
		var node = out.GetAtPath(candidate)
		if node == nil || node.Dir {
			continue
		}
		if base := filepath.Base(candidate); base == "root.html" || base == "md.html" {
			continue
		}

		var contentType = mime.TypeByExtension(filepath.Ext(candidate))
		if contentType == "" {
			contentType = "text/html; charset=utf-8"
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(node.Contents)
		return
	}

	http.NotFound(w, r)
}
