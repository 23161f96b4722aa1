package asset

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/syntax-framework/basset/styles"
)

// Options configuration shared by the manager, its collections and their assets
type Options struct {
	// Root is the application directory, relative paths below resolve against it.
	Root string

	// PublicPath is the public (document) directory, default directory of local assets.
	PublicPath string

	// AssetURL is the public URL of PublicPath. Default: "/".
	AssetURL string

	// Handles is the URL base under which raw assets are served.
	Handles string

	// CompilingPath is where compiled bundles are written, kept as configured ("public/assets/compiled").
	CompilingPath string

	// ProductionEnvironment decides when compiled bundles are served.
	ProductionEnvironment ProductionEnvironment

	// Collections registered when the manager is created.
	Collections map[string]func(*Collection)

	// Bundles maps a bundle name to its assets path segment ("admin" => "bundles/admin").
	Bundles map[string]string

	// Symlinks maps link paths to their targets, used when rewriting stylesheet urls.
	Symlinks map[string]string

	// DocumentRoot used when rewriting stylesheet urls. Default: the real PublicPath.
	DocumentRoot string

	// LessEnabled compiles LESS assets when their contents are requested.
	LessEnabled bool

	Less     styles.LessCompiler
	Rewriter styles.URIRewriter

	// Logger is the structured logger. If nil, slog.Default() is used.
	Logger *slog.Logger
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o *Options) rewriter() styles.URIRewriter {
	if o.Rewriter == nil {
		return styles.Rewriter{}
	}
	return o.Rewriter
}

func (o *Options) lessCompiler() styles.LessCompiler {
	if o.Less == nil {
		return &styles.Lessc{}
	}
	return o.Less
}

// baseURL AssetURL always ending with a slash
func (o *Options) baseURL() string {
	if o.AssetURL == "" {
		return "/"
	}
	if !strings.HasSuffix(o.AssetURL, "/") {
		return o.AssetURL + "/"
	}
	return o.AssetURL
}

func (o *Options) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || o.Root == "" {
		return p
	}
	return filepath.Join(o.Root, p)
}

// PublicDir the public directory on disk
func (o *Options) PublicDir() string {
	return o.resolve(o.PublicPath)
}

// CompilingDir the compiled bundles directory on disk
func (o *Options) CompilingDir() string {
	return o.resolve(o.CompilingPath)
}

func (o *Options) documentRoot() string {
	if o.DocumentRoot != "" {
		return o.resolve(o.DocumentRoot)
	}
	return realpath(o.PublicDir())
}

// realpath absolute path with symlinks evaluated, empty when it does not exist
func realpath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return ""
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return ""
	}
	return real
}
