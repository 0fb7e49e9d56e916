package prefabs

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

// ErrUnknownKind is returned when a kind has no entry in the catalog.
var ErrUnknownKind = errors.New("prefabs: unknown kind")

// DefaultCatalog is the embedded stats file.
const DefaultCatalog = "stats.yaml"

type catalogFile struct {
	Defaults map[string]any            `yaml:"defaults"`
	Kinds    map[string]map[string]any `yaml:"kinds"`
}

// Catalog is the reloadable set of KindSpecs read from a stats file. Every
// kind inherits the file's defaults block before its own keys are applied.
type Catalog struct {
	mu    sync.RWMutex
	name  string
	kinds map[string]KindSpec
}

func LoadCatalog(name string) (*Catalog, error) {
	c := &Catalog{name: name}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the stats file. On error the previous contents are kept.
func (c *Catalog) Reload() error {
	file, err := LoadSpec[catalogFile](c.name)
	if err != nil {
		return err
	}
	kinds, err := buildKinds(file)
	if err != nil {
		return fmt.Errorf("prefabs: %s: %w", c.name, err)
	}

	c.mu.Lock()
	c.kinds = kinds
	c.mu.Unlock()
	log.Printf("prefabs: loaded %d kinds from %s", len(kinds), c.name)
	return nil
}

func (c *Catalog) Name() string {
	return c.name
}

// Kind returns the spec for kind.
func (c *Catalog) Kind(kind string) (KindSpec, bool) {
	if c == nil {
		return KindSpec{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	spec, ok := c.kinds[kind]
	return spec, ok
}

// MustKind is Kind for call sites that treat a missing entry as a content
// error.
func (c *Catalog) MustKind(kind string) (KindSpec, error) {
	spec, ok := c.Kind(kind)
	if !ok {
		return KindSpec{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return spec, nil
}

func (c *Catalog) Kinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.kinds))
	for k := range c.kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func buildKinds(file catalogFile) (map[string]KindSpec, error) {
	kinds := make(map[string]KindSpec, len(file.Kinds))
	for name, raw := range file.Kinds {
		merged := make(map[string]any, len(file.Defaults)+len(raw))
		for k, v := range file.Defaults {
			merged[k] = v
		}
		for k, v := range raw {
			merged[k] = v
		}
		spec, err := DecodeComponentSpec[KindSpec](merged)
		if err != nil {
			return nil, fmt.Errorf("kind %s: %w", name, err)
		}
		kinds[name] = spec
	}
	return kinds, nil
}
