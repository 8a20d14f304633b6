package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/roach88/floatlat/internal/compiler"
	"github.com/roach88/floatlat/internal/ir"
)

//go:embed catalog.cue
var catalogCUE []byte

// Source returns the embedded CUE definition of the default catalog.
func Source() []byte {
	return append([]byte(nil), catalogCUE...)
}

// Catalog is an immutable, ordered set of categories.
type Catalog struct {
	cats   []ir.Category
	byName map[string]int
}

// New validates cats and returns a catalog preserving their order.
// All invariant violations are returned together as compiler.ValidationErrors.
func New(cats []ir.Category) (*Catalog, error) {
	if errs := compiler.Validate(cats); len(errs) > 0 {
		return nil, compiler.ValidationErrors(errs)
	}

	c := &Catalog{
		cats:   append([]ir.Category(nil), cats...),
		byName: make(map[string]int, len(cats)),
	}
	for i, cat := range c.cats {
		c.byName[cat.Name] = i
	}
	return c, nil
}

// Load compiles CUE source and validates the result.
func Load(src []byte, filename string) (*Catalog, error) {
	cats, err := compiler.CompileCatalogSource(src, filename)
	if err != nil {
		return nil, err
	}
	return New(cats)
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Load(catalogCUE, "catalog.cue")
	if err != nil {
		// The embedded catalog ships with the binary; failing here is a build defect.
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return c
})

// Default returns the built-in twelve-entry catalog.
func Default() *Catalog {
	return defaultCatalog()
}

// Categories returns the categories in catalog order.
// The returned slice is a copy.
func (c *Catalog) Categories() []ir.Category {
	return append([]ir.Category(nil), c.cats...)
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.cats)
}

// Lookup finds a category by name.
func (c *Catalog) Lookup(name string) (ir.Category, bool) {
	i, ok := c.byName[name]
	if !ok {
		return ir.Category{}, false
	}
	return c.cats[i], true
}

// Join returns the least category that both a and b fit into. A variable
// assigned values of both categories needs at least this category.
func (c *Catalog) Join(a, b ir.Category) (ir.Category, error) {
	want := a.Flags.Union(b.Flags)
	for _, cat := range c.cats {
		if cat.Flags == want {
			return cat, nil
		}
	}
	return ir.Category{}, fmt.Errorf("catalog: no category with flags %s joins %s and %s", want, a.Name, b.Name)
}

// Fingerprint identifies the catalog contents and order.
func (c *Catalog) Fingerprint() (ir.Fingerprint, error) {
	return ir.CatalogFingerprint(c.cats)
}
