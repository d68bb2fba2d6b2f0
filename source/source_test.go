package source

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsURL(t *testing.T) {
	testCases := map[string]bool{
		"http://example.com/a.jpg":  true,
		"https://example.com/a.jpg": true,
		"a.jpg":                     false,
		"/tmp/http/a.jpg":           false,
	}
	for s, expected := range testCases {
		if got := IsURL(s); got != expected {
			t.Errorf("%s: Expected: %v, got: %v", s, expected, got)
		}
	}
}

func TestRead(t *testing.T) {
	data := []byte("panorama")

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pano.jpg")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		b, err := Read(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(b, data) {
			t.Errorf("Expected: %q, got: %q", data, b)
		}
	})
	t.Run("MissingFile", func(t *testing.T) {
		if _, err := Read(filepath.Join(t.TempDir(), "none.jpg")); !os.IsNotExist(err) {
			t.Errorf("Expected not exist error, got: %v", err)
		}
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pano.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	t.Run("URL", func(t *testing.T) {
		b, err := Read(srv.URL + "/pano.jpg")
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(b, data) {
			t.Errorf("Expected: %q, got: %q", data, b)
		}
	})
	t.Run("URLNotFound", func(t *testing.T) {
		if _, err := Read(srv.URL + "/none.jpg"); err == nil {
			t.Error("Expected error")
		}
	})
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pano.jpg")
	if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan []byte, 4)
	w := &Watcher{
		OnChange: func(b []byte) { changed <- b },
		Settle:   20 * time.Millisecond,
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx, path) }()

	// fsnotify registers the directory asynchronously to this goroutine.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.jpg"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case b := <-changed:
		if string(b) != "v2" {
			t.Errorf("Expected: v2, got: %s", b)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timeout")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
