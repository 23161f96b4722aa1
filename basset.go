// Package basset groups stylesheets and scripts into named collections and renders them as raw
// html tags in development or as a single compiled bundle in production.
package basset

import (
	"sync"

	"github.com/syntax-framework/basset/asset"
	"github.com/syntax-framework/basset/config"
)

// Registry collections shared by every Basset it creates, e.g. a layout used by all applications
// of a process. Collections of the options with the same name run after the registered ones.
type Registry struct {
	mu          sync.Mutex
	collections map[string]func(*asset.Collection)
}

func NewRegistry() *Registry {
	return &Registry{collections: map[string]func(*asset.Collection){}}
}

// Register a collection created by every Basset built afterwards
func (r *Registry) Register(name string, fn func(*asset.Collection)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[name] = fn
}

// New creates a Basset for the current environment with the registered collections. options is
// copied, the caller's value is left untouched.
func (r *Registry) New(options *asset.Options, environment string) *asset.Basset {
	merged := asset.Options{}
	if options != nil {
		merged = *options
	}
	merged.Collections = r.merge(merged.Collections)
	return asset.New(&merged, environment)
}

// Load creates a Basset from a basset.json file with the registered collections
func (r *Registry) Load(configPath string, environment string) (*asset.Basset, error) {
	options, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return r.New(options, environment), nil
}

func (r *Registry) merge(collections map[string]func(*asset.Collection)) map[string]func(*asset.Collection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.collections) == 0 {
		return collections
	}

	out := map[string]func(*asset.Collection){}
	for name, fn := range r.collections {
		out[name] = fn
	}
	for name, fn := range collections {
		registered, exists := out[name]
		if !exists {
			out[name] = fn
			continue
		}
		local := fn
		out[name] = func(c *asset.Collection) {
			registered(c)
			local(c)
		}
	}
	return out
}

// New creates a Basset for the current environment
func New(options *asset.Options, environment string) *asset.Basset {
	return asset.New(options, environment)
}

// Load creates a Basset from a basset.json file
func Load(configPath string, environment string) (*asset.Basset, error) {
	return NewRegistry().Load(configPath, environment)
}
