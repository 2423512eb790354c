package commodity

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"tradenet/domain/core"
)

// CodeAll is the sentinel selection meaning "no commodity filter".
const CodeAll = "all"

//go:embed catalog.yaml
var catalogYAML []byte

// Entry is one selectable commodity category. Group entries enumerate their
// constituent individual codes; the union is precomputed upstream, never
// derived at request time.
type Entry struct {
	Code         string   `yaml:"code" json:"code"`
	Label        string   `yaml:"label" json:"label"`
	Group        bool     `yaml:"-" json:"group"`
	Constituents []string `yaml:"codes" json:"constituents,omitempty"`
}

// Catalog is the static set of valid commodity codes used to validate filter
// selections.
type Catalog struct {
	entries map[string]Entry
	order   []string
}

type catalogFile struct {
	Individual []Entry `yaml:"individual"`
	Groups     []Entry `yaml:"groups"`
}

// Load parses the embedded catalog. The catalog is a build-time constant, so
// any parse failure is a programming error surfaced at startup.
func Load() (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(catalogYAML, &file); err != nil {
		return nil, core.NewDataLoadError("commodity catalog", err)
	}

	c := &Catalog{entries: make(map[string]Entry, len(file.Individual)+len(file.Groups))}
	for _, e := range file.Individual {
		if err := c.add(e, false); err != nil {
			return nil, err
		}
	}
	for _, g := range file.Groups {
		if len(g.Constituents) == 0 {
			return nil, core.NewDataLoadError("commodity catalog",
				fmt.Errorf("group %q has no constituent codes", g.Code))
		}
		for _, cc := range g.Constituents {
			e, ok := c.entries[cc]
			if !ok || e.Group {
				return nil, core.NewDataLoadError("commodity catalog",
					fmt.Errorf("group %q references unknown code %q", g.Code, cc))
			}
		}
		if err := c.add(g, true); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(e Entry, group bool) error {
	if e.Code == "" || e.Label == "" {
		return core.NewDataLoadError("commodity catalog",
			fmt.Errorf("entry missing code or label: %+v", e))
	}
	if _, dup := c.entries[e.Code]; dup {
		return core.NewDataLoadError("commodity catalog",
			fmt.Errorf("duplicate code %q", e.Code))
	}
	e.Group = group
	c.entries[e.Code] = e
	c.order = append(c.order, e.Code)
	return nil
}

// Valid reports whether code is a selectable filter value. The "all"
// sentinel is always valid.
func (c *Catalog) Valid(code string) bool {
	if code == CodeAll {
		return true
	}
	_, ok := c.entries[code]
	return ok
}

// Lookup returns the catalog entry for code.
func (c *Catalog) Lookup(code string) (Entry, bool) {
	e, ok := c.entries[code]
	return e, ok
}

// Entries returns every entry in catalog order, individual codes first.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.entries[code])
	}
	return out
}

// Individual returns the individual (non-group) entries in catalog order.
func (c *Catalog) Individual() []Entry {
	var out []Entry
	for _, code := range c.order {
		if e := c.entries[code]; !e.Group {
			out = append(out, e)
		}
	}
	return out
}

// Groups returns the grouped entries in catalog order.
func (c *Catalog) Groups() []Entry {
	var out []Entry
	for _, code := range c.order {
		if e := c.entries[code]; e.Group {
			out = append(out, e)
		}
	}
	return out
}
