package asset

import (
	"html/template"
	"log/slog"
	"sort"
	"strings"
)

// publicFolders conventional public directory names removed from the compiling path
var publicFolders = []string{"public", "public_html", "htdocs"}

// Basset owns the collections of an application and renders them as html
type Basset struct {
	options     *Options
	environment string
	collections map[string]*Collection
}

// New creates the manager for the current environment and registers the configured collections
func New(options *Options, environment string) *Basset {
	if options == nil {
		options = &Options{}
	}
	b := &Basset{
		options:     options,
		environment: environment,
		collections: map[string]*Collection{},
	}
	b.RegisterCollections()
	return b
}

func (b *Basset) Environment() string {
	return b.environment
}

func (b *Basset) Options() *Options {
	return b.options
}

// Show renders "collection.css" or "collection.js": a single tag for the compiled bundle when
// it exists and the environment allows it, otherwise one tag per asset.
func (b *Basset) Show(name string) string {
	parts := strings.Split(name, ".")
	collectionName := parts[0]
	extension := ""
	if len(parts) > 1 {
		extension = parts[1]
	}

	collection, exists := b.collections[collectionName]
	if !exists {
		b.options.logger().Warn("unknown collection", slog.String("collection", collectionName))
		return "<!-- Basset could not find collection: " + collectionName + " -->"
	}

	group := Scripts
	if extension == "css" {
		group = Styles
	}

	if collection.IsCompiled(group) && b.options.ProductionEnvironment.Permits(b.environment) {
		return Html{Group: group, Extension: extension, Path: b.compiledPath(collection.CompiledName(group))}.String()
	}

	var response []string
	for _, a := range collection.Assets(group) {
		response = append(response, b.assetHtml(a).String())
	}
	return strings.Join(response, "\n")
}

// compiledPath public path of a bundle, the compiling path without its public folder names
func (b *Basset) compiledPath(compiledName string) string {
	base := b.options.CompilingPath
	for _, folder := range publicFolders {
		base = strings.ReplaceAll(base, folder, "")
	}
	base = strings.Trim(base, "/")
	if base == "" {
		return "/" + compiledName
	}
	return "/" + base + "/" + compiledName
}

func (b *Basset) assetHtml(a *Asset) Html {
	if a.External() {
		return Html{Group: a.Group(), Extension: a.Extension(), Path: a.File}
	}
	extension := a.Extension()
	if extension == "less" && b.options.LessEnabled {
		// served compiled by the handler
		extension = "css"
	}
	return Html{Group: a.Group(), Extension: extension, Path: b.HandlesPath(a.RelativePath())}
}

// HandlesPath the raw asset URL path under basset.handles
func (b *Basset) HandlesPath(relativePath string) string {
	handles := strings.Trim(b.options.Handles, "/")
	if handles == "" {
		return "/" + relativePath
	}
	return "/" + handles + "/" + relativePath
}

// Collection gets or creates the named collection, then hands it to callback when given
func (b *Basset) Collection(name string, callback func(*Collection)) *Collection {
	collection, exists := b.collections[name]
	if !exists {
		collection = newCollection(name, b.environment, b.options)
		b.collections[name] = collection
	}
	if callback != nil {
		callback(collection)
	}
	return collection
}

func (b *Basset) HasCollection(name string) bool {
	_, exists := b.collections[name]
	return exists
}

// Collections a copy of the collections by name
func (b *Basset) Collections() map[string]*Collection {
	out := make(map[string]*Collection, len(b.collections))
	for name, collection := range b.collections {
		out[name] = collection
	}
	return out
}

// Names collection names, sorted
func (b *Basset) Names() []string {
	names := make([]string, 0, len(b.collections))
	for name := range b.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterCollections registers the collections of the options, in name order
func (b *Basset) RegisterCollections() {
	names := make([]string, 0, len(b.options.Collections))
	for name := range b.options.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.Collection(name, b.options.Collections[name])
	}
}

// Lookup finds the local asset served at a path relative to basset.handles
func (b *Basset) Lookup(relativePath string) (*Asset, bool) {
	relativePath = strings.TrimPrefix(relativePath, "/")
	for _, name := range b.Names() {
		collection := b.collections[name]
		for _, group := range []Group{Styles, Scripts} {
			for _, a := range collection.Assets(group) {
				if !a.External() && a.RelativePath() == relativePath {
					return a, true
				}
			}
		}
	}
	return nil, false
}

// Compile writes the bundle of every collection group that has local assets
func (b *Basset) Compile() ([]string, error) {
	var written []string
	for _, name := range b.Names() {
		collection := b.collections[name]
		for _, group := range []Group{Styles, Scripts} {
			if !hasBundled(collection.Assets(group)) {
				continue
			}
			target, err := collection.Compile(group)
			if err != nil {
				return written, err
			}
			written = append(written, target)
		}
	}
	return written, nil
}

func hasBundled(assets []*Asset) bool {
	for _, a := range assets {
		if a.bundled() {
			return true
		}
	}
	return false
}

// FuncMap template functions, {{ basset "app.css" }}
func (b *Basset) FuncMap() template.FuncMap {
	return template.FuncMap{
		"basset": func(name string) template.HTML {
			return template.HTML(b.Show(name))
		},
	}
}

// Contents of an asset with the configured symlinks and document root
func (b *Basset) Contents(a *Asset) string {
	return a.Get(b.options.Symlinks, b.options.documentRoot())
}
