package render

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPageAndFragment(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"base.tmpl":           {Data: []byte(`{{define "base"}}<main>{{template "hello" .}}</main>{{end}}`)},
		"partials/hello.tmpl": {Data: []byte(`{{define "hello"}}<p>{{upper .}}</p>{{end}}`)},
	}
	r, err := New(fsys, template.FuncMap{"upper": strings.ToUpper})
	require.NoError(t, err)
	require.True(t, r.Has("hello"))
	require.False(t, r.Has("missing"))

	rec := httptest.NewRecorder()
	require.NoError(t, r.Page(rec, http.StatusOK, "hola"))
	require.Equal(t, "<main><p>HOLA</p></main>", rec.Body.String())
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	require.NoError(t, r.Fragment(rec, http.StatusAccepted, "hello", "x"))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "<p>X</p>", rec.Body.String())
}

func TestFragmentErrorWritesNothing(t *testing.T) {
	t.Parallel()

	r, err := New(fstest.MapFS{"a.tmpl": {Data: []byte(`{{define "a"}}{{.Missing.Field}}{{end}}`)}}, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.Error(t, r.Fragment(rec, http.StatusOK, "a", struct{}{}))
	require.Zero(t, rec.Body.Len())

	require.Error(t, r.Fragment(rec, http.StatusOK, "nope", nil))
}

func TestNewWithoutTemplates(t *testing.T) {
	t.Parallel()

	_, err := New(fstest.MapFS{"readme.md": {Data: []byte("x")}}, nil)
	require.True(t, errors.Is(err, ErrNoTemplates))
}

func TestWatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "base.tmpl")
	require.NoError(t, os.WriteFile(file, []byte(`{{define "base"}}v1{{end}}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan struct{}, 4)
	r, err := NewDev(ctx, dir, nil,
		WithDebounce(10*time.Millisecond),
		WithOnReload(func() { reloaded <- struct{}{} }),
	)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(file, []byte(`{{define "base"}}v2{{end}}`), 0o644))
	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("templates were not reloaded")
	}

	rec := httptest.NewRecorder()
	require.NoError(t, r.Page(rec, http.StatusOK, nil))
	require.Equal(t, "v2", rec.Body.String())
}
