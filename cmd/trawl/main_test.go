package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls seeds to completion", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><body><a href="/a">A</a> <a href="/b">B</a></body></html>`)
		})
		mux.HandleFunc("/a", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><body><a href="/">home</a></body></html>`)
		})
		mux.HandleFunc("/b", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><body>leaf</body></html>`)
		})

		configPath := writeConfig(t, fmt.Sprintf(`{
			"seeds": ["%s/"],
			"allowed_domains": ["127.0.0.1"],
			"max_concurrency": 2,
			"per_domain_delay_ms": 1,
			"respect_robots_txt": false,
			"storage": {"sqlite_path": %q, "save_page_html": true}
		}`, srv.URL, filepath.Join(t.TempDir(), "crawl.db")))

		var stdout, stderr bytes.Buffer
		m := NewMain()
		err := m.Run(context.Background(), []string{"run", "--config", configPath}, &stdout, &stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "finished: 3 pages")
	})

	t.Run("stays within allowed domains", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><body><a href="https://elsewhere.example/out">out</a></body></html>`)
		})

		configPath := writeConfig(t, fmt.Sprintf(`{
			"seeds": ["%s/"],
			"allowed_domains": ["127.0.0.1"],
			"per_domain_delay_ms": 1,
			"respect_robots_txt": false,
			"storage": {"sqlite_path": %q}
		}`, srv.URL, filepath.Join(t.TempDir(), "crawl.db")))

		var stdout, stderr bytes.Buffer
		m := NewMain()
		err := m.Run(context.Background(), []string{"run", "--config", configPath}, &stdout, &stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "finished: 1 pages")
	})

	t.Run("errors when no seed survives scoping", func(t *testing.T) {
		t.Parallel()

		configPath := writeConfig(t, fmt.Sprintf(`{
			"seeds": ["https://elsewhere.example/"],
			"allowed_domains": ["site.example"],
			"storage": {"sqlite_path": %q}
		}`, filepath.Join(t.TempDir(), "crawl.db")))

		var stdout, stderr bytes.Buffer
		m := NewMain()
		err := m.Run(context.Background(), []string{"run", "--config", configPath}, &stdout, &stderr)
		assert.Error(t, err)
	})

	t.Run("version prints without a config", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := NewMain()
		err := m.Run(context.Background(), []string{"version"}, &stdout, &stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), version)
	})

	t.Run("no command shows help and errors", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := NewMain()
		err := m.Run(context.Background(), nil, &stdout, &stderr)
		assert.Error(t, err)
	})

	t.Run("missing config file errors", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := NewMain()
		err := m.Run(context.Background(),
			[]string{"run", "--config", filepath.Join(t.TempDir(), "absent.json")},
			&stdout, &stderr)
		assert.Error(t, err)
	})
}
