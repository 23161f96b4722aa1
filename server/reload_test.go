package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/syntax-framework/basset/asset"
	"github.com/tdewolff/test"
)

func testBasset(t *testing.T) (*asset.Basset, string) {
	root := t.TempDir()
	for name, content := range map[string]string{
		"public/css/app.css": "body {}",
		"public/js/app.js":   "app();",
	} {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	b := asset.New(&asset.Options{
		Root:       root,
		PublicPath: "public",
		Handles:    "basset",
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Collections: map[string]func(*asset.Collection){
			"app": func(c *asset.Collection) {
				c.Add("style", "app.css")
				c.Add("script", "app.js")
				c.Add("jquery", "//code.jquery.com/jquery.js")
			},
		},
	}, "local")
	return b, root
}

func touch(t *testing.T, p string, modTime time.Time) {
	if err := os.Chtimes(p, modTime, modTime); err != nil {
		t.Fatal(err)
	}
}

func Test_Reload_Changes(t *testing.T) {
	b, root := testBasset(t)
	css := filepath.Join(root, "public", "css", "app.css")
	js := filepath.Join(root, "public", "js", "app.js")

	before := scanAssets(b)
	test.That(t, len(before) == 2, "scanAssets() | expected the two local assets")
	test.That(t, len(changes(b, before, scanAssets(b))) == 0, "changes(unchanged) | expected no messages")

	touch(t, css, time.Now().Add(time.Hour))
	messages := changes(b, before, scanAssets(b))
	if len(messages) != 1 || messages[0].Type != ReloadTypeCSS || messages[0].File != "/basset/css/app.css" {
		t.Errorf("changes(stylesheet) | invalid output\n   actual: %+v\n expected: css /basset/css/app.css", messages)
	}

	touch(t, js, time.Now().Add(2*time.Hour))
	messages = changes(b, before, scanAssets(b))
	if len(messages) != 1 || messages[0].Type != ReloadTypeFull {
		t.Errorf("changes(script) | invalid output\n   actual: %+v\n expected: reload", messages)
	}

	if err := os.Remove(js); err != nil {
		t.Fatal(err)
	}
	messages = changes(b, before, scanAssets(b))
	if len(messages) != 1 || messages[0].Type != ReloadTypeFull {
		t.Errorf("changes(removed) | invalid output\n   actual: %+v\n expected: reload", messages)
	}
}

func Test_Reload_WebSocket(t *testing.T) {
	b, _ := testBasset(t)
	reloader := NewReloader(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer reloader.Close()

	srv := httptest.NewServer(New(b, WithRegistry(prometheus.NewRegistry()), WithReloader(reloader)))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/basset/" + ReloadPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for reloader.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("reloader | expected a connected client")
		}
		time.Sleep(10 * time.Millisecond)
	}

	reloader.Notify(ReloadMessage{Type: ReloadTypeCSS, File: "/basset/css/app.css"})

	if err = conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var msg ReloadMessage
	if err = json.Unmarshal(data, &msg); err != nil {
		t.Fatal(err)
	}
	test.String(t, string(msg.Type), string(ReloadTypeCSS), "message type")
	test.String(t, msg.File, "/basset/css/app.css", "message file")
}

func Test_ReloadScript(t *testing.T) {
	b, _ := testBasset(t)
	script := string(ReloadScript(b))
	test.That(t, strings.Contains(script, "'/basset/_reload'"), "ReloadScript() | expected the reload path")
}
