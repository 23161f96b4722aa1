package asset

import (
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Group classification of an asset by its extension
type Group string

const (
	Styles  Group = "styles"
	Scripts Group = "scripts"
)

var extensionGroups = map[string]Group{
	"css":  Styles,
	"less": Styles,
	"js":   Scripts,
}

// Asset a stylesheet or script, local or external, registered in a collection
type Asset struct {
	Name         string
	File         string   // "app.css", "css/app.css", "admin::css/app.css" or "http://cdn/app.js"
	Dependencies []string // Names of assets this one depends on, recorded only
	Updated      time.Time
	Directory    string // Real directory of a local asset, set by Exists
	URL          string // Public URL of a local asset, set by Exists
	external     bool
	options      *Options
}

func NewAsset(options *Options, name string, file string, dependencies ...string) *Asset {
	return &Asset{
		Name:         name,
		File:         file,
		Dependencies: dependencies,
		URL:          options.baseURL(),
		options:      options,
	}
}

// Exists resolves the asset location and checks that a local asset is on disk.
//
// An empty directory means the public directory; files without a "/" then live in a
// subdirectory named after their extension (public/css/app.css). Assets with a URI scheme
// are external and always exist.
func (a *Asset) Exists(directory string) bool {
	if !strings.Contains(a.File, "::") && isExternal(a.File) {
		a.external = true
		return true
	}

	a.Directory = directory
	if directory == "" {
		a.Directory = a.options.PublicDir()
	}

	// bundle assets live in the bundle assets directory
	if bundle, file, isBundle := strings.Cut(a.File, "::"); isBundle {
		segment := strings.Trim(a.options.Bundles[bundle], "/")
		a.File = file
		if segment != "" {
			a.Directory = filepath.Join(a.Directory, filepath.FromSlash(segment))
			a.URL += segment + "/"
		}
	}

	if directory == "" && !strings.Contains(a.File, "/") {
		extension := a.Extension()
		a.Directory = filepath.Join(a.Directory, extension)
		a.URL += extension + "/"
	}

	a.Directory = realpath(a.Directory)
	a.URL += a.File

	if a.Directory == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(a.Directory, filepath.FromSlash(a.File)))
	if err != nil || info.IsDir() {
		return false
	}
	a.Updated = info.ModTime()
	return true
}

// isExternal true for absolute ("https://...") and protocol relative ("//cdn/...") URLs
func isExternal(file string) bool {
	if strings.HasPrefix(file, "//") {
		return true
	}
	u, err := url.Parse(file)
	if err != nil {
		return false
	}
	// one letter schemes are windows drives
	return len(u.Scheme) > 1
}

func (a *Asset) External() bool {
	return a.external
}

// location directory and file as used in messages and reads
func (a *Asset) location() string {
	return a.Directory + "/" + a.File
}

// Path the file of a local asset on disk, empty for external assets
func (a *Asset) Path() string {
	if a.external || a.Directory == "" {
		return ""
	}
	return filepath.Join(a.Directory, filepath.FromSlash(a.File))
}

// Get the asset contents. Stylesheets have their relative urls rewritten and LESS files are
// compiled when enabled. Failures are reported as a comment in place of the contents.
func (a *Asset) Get(symlinks map[string]string, documentRoot string) string {
	location := a.location()
	logger := a.options.logger()

	contents, err := os.ReadFile(filepath.FromSlash(location))
	if err != nil || len(contents) == 0 {
		logger.Debug("asset not readable", slog.String("asset", a.Name), slog.String("path", location))
		return "\n/* Basset could not find asset [" + location + "] */\n"
	}

	if a.Is(Styles) {
		rewritten, err := a.options.rewriter().Rewrite(contents, filepath.Dir(filepath.FromSlash(location)), documentRoot, symlinks)
		if err != nil {
			logger.Warn("stylesheet urls not rewritten", slog.String("asset", a.Name), slog.Any("error", err))
		} else {
			contents = rewritten
		}
	}

	if a.IsLess() && a.options.LessEnabled {
		compiled, err := a.options.lessCompiler().Compile(contents, a.Directory)
		if err != nil {
			logger.Warn("less compilation failed", slog.String("asset", a.Name), slog.Any("error", err))
			message := strings.ReplaceAll(err.Error(), "*/", "* /")
			return "\n/* Basset could not compile asset [" + location + "]: " + message + " */\n"
		}
		contents = compiled
	}

	return string(contents) + "\n"
}

// Is checks if the asset is part of a group based on its extension
func (a *Asset) Is(group Group) bool {
	g, known := extensionGroups[a.Extension()]
	if !known {
		return false
	}
	return g == group
}

func (a *Asset) IsLess() bool {
	return a.Extension() == "less"
}

// bundled true for local assets that can go in a compiled bundle
func (a *Asset) bundled() bool {
	return !a.external && (!a.IsLess() || a.options.LessEnabled)
}

// Group of the asset, empty for unknown extensions
func (a *Asset) Group() Group {
	return extensionGroups[a.Extension()]
}

// Extension lower cased, without the query string of external URLs
func (a *Asset) Extension() string {
	file := a.File
	if i := strings.IndexAny(file, "?#"); i >= 0 {
		file = file[:i]
	}
	return strings.ToLower(strings.TrimPrefix(path.Ext(file), "."))
}

// RelativePath the asset URL relative to the public URL ("css/app.css")
func (a *Asset) RelativePath() string {
	return strings.TrimPrefix(a.URL, a.options.baseURL())
}
