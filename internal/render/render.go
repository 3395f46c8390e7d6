package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses bursts of editor writes into one reparse.
const DefaultDebounce = 150 * time.Millisecond

// ErrNoTemplates is returned when the source holds no *.tmpl files.
var ErrNoTemplates = errors.New("render: no templates found")

// Renderer executes html/template sets parsed from an fs.FS.
type Renderer struct {
	mu    sync.RWMutex
	fsys  fs.FS
	funcs template.FuncMap
	tmpl  *template.Template
}

// New parses every *.tmpl file under fsys.
func New(fsys fs.FS, funcs template.FuncMap) (*Renderer, error) {
	r := &Renderer{fsys: fsys, funcs: funcs}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload reparses the template set. The previous set stays active on error.
func (r *Renderer) Reload() error {
	t, err := parseTemplates(r.fsys, r.funcs)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.tmpl = t
	r.mu.Unlock()
	return nil
}

// Page renders the "base" layout.
func (r *Renderer) Page(w http.ResponseWriter, status int, data any) error {
	return r.Fragment(w, status, "base", data)
}

// Fragment renders a named template. Output is buffered so a failing
// template never leaves a half-written response.
func (r *Renderer) Fragment(w http.ResponseWriter, status int, name string, data any) error {
	r.mu.RLock()
	t := r.tmpl
	r.mu.RUnlock()

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// Has reports whether a template with the given name is defined.
func (r *Renderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tmpl.Lookup(name) != nil
}

func parseTemplates(fsys fs.FS, funcs template.FuncMap) (*template.Template, error) {
	// ParseFS globs don't recurse, so walk the tree.
	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoTemplates
	}
	return template.New("_root").Funcs(funcs).ParseFS(fsys, files...)
}

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

type watchConfig struct {
	debounce time.Duration
	logger   *zap.Logger
	onReload func()
}

// WithDebounce sets the quiet period before reparsing.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) { c.debounce = d }
}

// WithLogger sets the logger used for reload results.
func WithLogger(l *zap.Logger) WatchOption {
	return func(c *watchConfig) { c.logger = l }
}

// WithOnReload sets a callback invoked after each successful reload.
func WithOnReload(fn func()) WatchOption {
	return func(c *watchConfig) { c.onReload = fn }
}

// NewDev parses templates from dir on disk and reloads them on change
// until ctx is done.
func NewDev(ctx context.Context, dir string, funcs template.FuncMap, opts ...WatchOption) (*Renderer, error) {
	r, err := New(os.DirFS(dir), funcs)
	if err != nil {
		return nil, err
	}
	if err := r.Watch(ctx, dir, opts...); err != nil {
		return nil, err
	}
	return r, nil
}

// Watch reloads the template set whenever a file under dir changes.
// Only the top-level directory and its immediate subdirectories are watched.
func (r *Renderer) Watch(ctx context.Context, dir string, opts ...WatchOption) error {
	cfg := watchConfig{debounce: DefaultDebounce, logger: zap.NewNop(), onReload: func() {}}
	for _, opt := range opts {
		opt(&cfg)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("render: watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("render: watch %s: %w", dir, err)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.IsDir() {
			_ = fsw.Add(dir + string(os.PathSeparator) + e.Name())
		}
	}

	go func() {
		defer fsw.Close()
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(ev.Name, ".tmpl") {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(cfg.debounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(cfg.debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				if err := r.Reload(); err != nil {
					cfg.logger.Warn("templates reload failed", zap.Error(err))
					continue
				}
				cfg.logger.Info("templates reloaded", zap.String("dir", dir))
				cfg.onReload()
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				cfg.logger.Warn("template watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
