// Package i18n renders recommendation codes, statuses and captions in the
// operator's language. Lookups fall back to English, then to the key itself.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const Fallback = "en"

//go:embed locales/*.yaml
var localeFS embed.FS

type Catalog struct {
	tables map[string]map[string]string
}

var (
	defaultCatalog *Catalog
	defaultErr     error
	defaultOnce    sync.Once
)

// Default returns the catalog built from the embedded locale files.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load()
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultCatalog
}

func Load() (*Catalog, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	c := &Catalog{tables: make(map[string]map[string]string)}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".yaml" {
			continue
		}
		raw, err := localeFS.ReadFile("locales/" + name)
		if err != nil {
			return nil, err
		}
		table := make(map[string]string)
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("locale %s: %w", name, err)
		}
		c.tables[strings.TrimSuffix(name, ".yaml")] = table
	}
	if _, ok := c.tables[Fallback]; !ok {
		return nil, fmt.Errorf("locale %s missing", Fallback)
	}
	return c, nil
}

func (c *Catalog) T(lang, key string) string {
	if v, ok := c.tables[lang][key]; ok {
		return v
	}
	if v, ok := c.tables[Fallback][key]; ok {
		return v
	}
	return key
}

// Resolve maps an unknown or empty language to the fallback.
func (c *Catalog) Resolve(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if _, ok := c.tables[lang]; ok {
		return lang
	}
	return Fallback
}

func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.tables))
	for k := range c.tables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MissingKeys lists keys present in the fallback table but absent in lang.
func (c *Catalog) MissingKeys(lang string) []string {
	var out []string
	for k := range c.tables[Fallback] {
		if _, ok := c.tables[lang][k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Messages translates a list of message codes in order.
func Messages[K ~string](c *Catalog, lang string, codes []K) []string {
	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = c.T(lang, string(code))
	}
	return out
}

func (c *Catalog) Status(lang string, s fmt.Stringer) string {
	return c.T(lang, "status_"+s.String())
}

func (c *Catalog) Parameter(lang, name string) string {
	return c.T(lang, "param_"+name)
}

func (c *Catalog) Overall(lang string, safe bool) string {
	if safe {
		return c.T(lang, "overall_safe")
	}
	return c.T(lang, "overall_unsafe")
}
