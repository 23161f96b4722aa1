package asset

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/syntax-framework/basset/cmn"
)

var errorNoAssets = cmn.Err(
	"collection.empty",
	"No local assets to compile", "Collection: %s", "Group: %s",
)

var errorCompileWrite = cmn.Err(
	"collection.write",
	"Unable to write the compiled bundle", "Path: %s", "Caused by: %s",
)

// Collection a named, ordered group of stylesheets and scripts
type Collection struct {
	name        string
	environment string
	options     *Options
	order       map[Group]*cmn.IndexedSet[string]
	assets      map[Group]map[string]*Asset
	directories []string // Directory() scopes, innermost last
}

func newCollection(name string, environment string, options *Options) *Collection {
	return &Collection{
		name:        name,
		environment: environment,
		options:     options,
		order: map[Group]*cmn.IndexedSet[string]{
			Styles:  {},
			Scripts: {},
		},
		assets: map[Group]map[string]*Asset{
			Styles:  {},
			Scripts: {},
		},
	}
}

func (c *Collection) Name() string {
	return c.name
}

func (c *Collection) directory() string {
	if len(c.directories) == 0 {
		return ""
	}
	return c.directories[len(c.directories)-1]
}

// Add registers an asset, local assets that cannot be found are skipped.
// Adding a name again replaces the asset keeping its position.
func (c *Collection) Add(name string, file string, dependencies ...string) *Collection {
	logger := c.options.logger()

	a := NewAsset(c.options, name, file, dependencies...)
	if !a.Exists(c.directory()) {
		logger.Warn("asset not found",
			slog.String("collection", c.name), slog.String("asset", name), slog.String("path", a.location()),
		)
		return c
	}

	group := a.Group()
	if group == "" {
		logger.Warn("asset has an unknown extension",
			slog.String("collection", c.name), slog.String("asset", name), slog.String("file", file),
		)
		return c
	}

	// a name belongs to a single group
	for g, names := range c.order {
		if g != group && names.Remove(name) {
			delete(c.assets[g], name)
		}
	}

	c.order[group].Add(name)
	c.assets[group][name] = a
	logger.Debug("asset registered",
		slog.String("collection", c.name), slog.String("asset", name), slog.String("url", a.URL),
		slog.Bool("external", a.External()),
	)
	return c
}

// Directory registers the assets added by fn relative to dir. Relative dirs resolve against the
// public directory.
func (c *Collection) Directory(dir string, fn func(*Collection)) *Collection {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.options.PublicDir(), filepath.FromSlash(dir))
	}
	c.directories = append(c.directories, dir)
	defer func() {
		c.directories = c.directories[:len(c.directories)-1]
	}()
	fn(c)
	return c
}

// When runs fn only when the expression holds. The expression sees `environment` (string) and
// `production` (bool, compiled bundles are served).
func (c *Collection) When(expression string, fn func(*Collection)) *Collection {
	logger := c.options.logger()

	exp, err := ParseExpression(expression)
	if err != nil {
		logger.Warn("invalid collection condition",
			slog.String("collection", c.name), slog.String("when", expression), slog.Any("error", err),
		)
		return c
	}
	ok, err := exp.EvalBool(map[string]interface{}{
		"environment": c.environment,
		"production":  c.options.ProductionEnvironment.Permits(c.environment),
	})
	if err != nil {
		logger.Warn("collection condition failed",
			slog.String("collection", c.name), slog.String("when", expression), slog.Any("error", err),
		)
		return c
	}
	if ok {
		fn(c)
	}
	return c
}

// Assets of the group in registration order
func (c *Collection) Assets(group Group) []*Asset {
	names, exists := c.order[group]
	if !exists {
		return nil
	}
	var out []*Asset
	for _, name := range names.ToArray() {
		out = append(out, c.assets[group][name])
	}
	return out
}

// Asset by name in any group
func (c *Collection) Asset(name string) (*Asset, bool) {
	for _, assets := range c.assets {
		if a, exists := assets[name]; exists {
			return a, true
		}
	}
	return nil, false
}

// CompiledName bundle file name, fingerprinted by the assets and their modification times
//
// app-1a2b3c4d.css
func (c *Collection) CompiledName(group Group) string {
	extension := "js"
	if group == Styles {
		extension = "css"
	}
	buf := &bytes.Buffer{}
	for _, a := range c.Assets(group) {
		buf.WriteString(a.Name)
		buf.WriteByte(0)
		buf.WriteString(a.File)
		buf.WriteByte(0)
		buf.WriteString(strconv.FormatInt(a.Updated.UnixNano(), 10))
		buf.WriteByte('\n')
	}
	return c.name + "-" + cmn.HashXXH64(buf.Bytes())[:8] + "." + extension
}

// IsCompiled checks that the bundle of the group exists in the compiling directory
func (c *Collection) IsCompiled(group Group) bool {
	info, err := os.Stat(filepath.Join(c.options.CompilingDir(), c.CompiledName(group)))
	return err == nil && !info.IsDir()
}

// Compile concatenates the local assets of the group into the compiling directory and returns
// the path written. External assets are not part of the bundle, neither are LESS assets unless
// LessEnabled compiles them.
func (c *Collection) Compile(group Group) (string, error) {
	logger := c.options.logger()

	buf := &bytes.Buffer{}
	count := 0
	documentRoot := c.options.documentRoot()
	for _, a := range c.Assets(group) {
		if a.External() {
			logger.Warn("external asset left out of the bundle",
				slog.String("collection", c.name), slog.String("asset", a.Name), slog.String("file", a.File),
			)
			continue
		}
		if !a.bundled() {
			logger.Warn("less asset left out of the bundle, less.php is disabled",
				slog.String("collection", c.name), slog.String("asset", a.Name), slog.String("file", a.File),
			)
			continue
		}
		buf.WriteString(a.Get(c.options.Symlinks, documentRoot))
		count++
	}
	if count == 0 {
		return "", errorNoAssets(c.name, group)
	}

	dir := c.options.CompilingDir()
	target := filepath.Join(dir, c.CompiledName(group))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errorCompileWrite(target, err)
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return "", errorCompileWrite(target, err)
	}
	logger.Info("collection compiled",
		slog.String("collection", c.name), slog.String("group", string(group)), slog.String("path", target),
		slog.Int("assets", count), slog.Int("bytes", buf.Len()),
	)
	return target, nil
}
