package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/syntax-framework/basset/asset"
	"github.com/syntax-framework/basset/cmn"
	"github.com/syntax-framework/basset/styles"
)

const (
	// FileName is the name of the configuration file.
	FileName = "basset.json"

	DefaultPublicPath    = "public"
	DefaultAssetURL      = "/"
	DefaultHandles       = "basset"
	DefaultCompilingPath = "public/assets/compiled"
)

// Configuration keys
const (
	KeyProductionEnvironment = "basset.production_environment"
	KeyCompilingPath         = "basset.compiling_path"
	KeyHandles               = "basset.handles"
	KeyCollections           = "basset.collections"
	KeyPublicPath            = "basset.public_path"
	KeyAssetURL              = "basset.asset_url"
	KeyBundles               = "basset.bundles"
	KeySymlinks              = "basset.symlinks"
	KeyDocumentRoot          = "basset.document_root"
	KeyLess                  = "less.php"
	KeyLessBinary            = "less.binary"
)

// scalarKeys keys that can be overridden by the environment
var scalarKeys = []string{
	KeyProductionEnvironment,
	KeyCompilingPath,
	KeyHandles,
	KeyPublicPath,
	KeyAssetURL,
	KeyDocumentRoot,
	KeyLess,
	KeyLessBinary,
}

var errorConfigRead = cmn.Err(
	"config.read",
	"Unable to read the configuration file", "Path: %s", "Caused by: %s",
)

var errorConfigParse = cmn.Err(
	"config.parse",
	"Invalid configuration file", "Path: %s", "Caused by: %s",
)

var errorConfigProduction = cmn.Err(
	"config.production_environment",
	"basset.production_environment must be a boolean, a string or null", "Value: %v",
)

var errorConfigCollection = cmn.Err(
	"config.collection",
	"Invalid collection asset", "Collection: %s", "Index: %d", "Reason: %s",
)

// EnvName the environment variable overriding a key
//
// basset.compiling_path => BASSET_COMPILING_PATH
func EnvName(key string) string {
	return strcase.ToScreamingSnake(strings.ReplaceAll(key, ".", "_"))
}

// Read parses the configuration file and applies the environment overrides
func Read(path string) (*cmn.JSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errorConfigRead(path, err)
	}
	j, err := cmn.JSONParse(data)
	if err != nil {
		return nil, errorConfigParse(path, err)
	}
	ApplyEnv(j, os.LookupEnv)
	return j, nil
}

// ApplyEnv overrides scalar keys with the environment variables found by lookup
func ApplyEnv(j *cmn.JSON, lookup func(string) (string, bool)) {
	for _, key := range scalarKeys {
		value, found := lookup(EnvName(key))
		if !found {
			continue
		}
		switch key {
		case KeyProductionEnvironment:
			switch strings.ToLower(value) {
			case "true":
				j.Set(key, true)
			case "false":
				j.Set(key, false)
			case "", "null":
				j.Set(key, nil)
			default:
				j.Set(key, value)
			}
		case KeyLess:
			j.Set(key, strings.EqualFold(value, "true") || value == "1")
		default:
			j.Set(key, value)
		}
	}
}

// Load reads the configuration file into options, relative paths resolve against its directory
func Load(path string) (*asset.Options, error) {
	j, err := Read(path)
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errorConfigRead(path, err)
	}
	return Options(j, root)
}

// Options builds the asset options of a configuration
func Options(j *cmn.JSON, root string) (*asset.Options, error) {
	options := &asset.Options{
		Root:          root,
		PublicPath:    stringOr(j, KeyPublicPath, DefaultPublicPath),
		AssetURL:      stringOr(j, KeyAssetURL, DefaultAssetURL),
		Handles:       stringOr(j, KeyHandles, DefaultHandles),
		CompilingPath: stringOr(j, KeyCompilingPath, DefaultCompilingPath),
		Bundles:       j.StringMap(KeyBundles),
		Symlinks:      j.StringMap(KeySymlinks),
		DocumentRoot:  j.String(KeyDocumentRoot),
		LessEnabled:   j.Bool(KeyLess),
		Less:          &styles.Lessc{Binary: j.String(KeyLessBinary)},
	}

	production, err := productionEnvironment(j)
	if err != nil {
		return nil, err
	}
	options.ProductionEnvironment = production

	collections, err := collectionsOf(j)
	if err != nil {
		return nil, err
	}
	options.Collections = collections

	return options, nil
}

func stringOr(j *cmn.JSON, key string, fallback string) string {
	if value := j.String(key); value != "" {
		return value
	}
	return fallback
}

func productionEnvironment(j *cmn.JSON) (asset.ProductionEnvironment, error) {
	value, _ := j.Value(KeyProductionEnvironment)
	switch v := value.(type) {
	case nil:
		return asset.ProductionEnvironment{}, nil
	case bool:
		return asset.ProductionFlag(v), nil
	case string:
		return asset.ProductionName(v), nil
	}
	return asset.ProductionEnvironment{}, errorConfigProduction(value)
}

// assetDefinition one entry of a configured collection
type assetDefinition struct {
	name         string
	file         string
	dependencies []string
	directory    string
	when         string
}

func (d assetDefinition) register(c *asset.Collection) {
	add := func(c *asset.Collection) {
		c.Add(d.name, d.file, d.dependencies...)
	}
	if d.directory != "" {
		inner := add
		add = func(c *asset.Collection) {
			c.Directory(d.directory, inner)
		}
	}
	if d.when != "" {
		c.When(d.when, add)
		return
	}
	add(c)
}

func collectionsOf(j *cmn.JSON) (map[string]func(*asset.Collection), error) {
	obj := j.Object(KeyCollections)
	if obj == nil {
		return nil, nil
	}

	names := make([]string, 0, len(obj.Get()))
	for name := range obj.Get() {
		names = append(names, name)
	}
	sort.Strings(names)

	collections := map[string]func(*asset.Collection){}
	for _, name := range names {
		var definitions []assetDefinition
		for i, item := range obj.Array(name) {
			d := assetDefinition{
				name:         item.String("name"),
				file:         item.String("file"),
				dependencies: item.ArrayString("dependencies"),
				directory:    item.String("directory"),
				when:         item.String("when"),
			}
			if d.file == "" {
				return nil, errorConfigCollection(name, i, "missing file")
			}
			if d.name == "" {
				d.name = d.file
			}
			definitions = append(definitions, d)
		}
		collections[name] = func(c *asset.Collection) {
			for _, d := range definitions {
				d.register(c)
			}
		}
	}
	return collections, nil
}
