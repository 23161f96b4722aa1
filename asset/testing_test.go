package asset

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// testPublic creates <tmp>/public with the given files, returns options rooted at <tmp>
func testPublic(t *testing.T, files map[string]string) *Options {
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, "public", filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "public"), 0o755); err != nil {
		t.Fatal(err)
	}
	return &Options{
		Root:          root,
		PublicPath:    "public",
		AssetURL:      "/",
		Handles:       "basset",
		CompilingPath: "public/assets/compiled",
		Bundles:       map[string]string{"admin": "/bundles/admin/"},
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// testReal the real path of a directory under the options root
func testReal(t *testing.T, options *Options, rel string) string {
	real := realpath(filepath.Join(options.Root, filepath.FromSlash(rel)))
	if real == "" {
		t.Fatalf("realpath(%s) | directory does not exist", rel)
	}
	return real
}
