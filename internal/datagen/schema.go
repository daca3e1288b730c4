package datagen

import (
	"fmt"
	"math/rand/v2"
)

// Pool maps a type name to its pre-generated sample values.
type Pool map[string][]Value

// Schema is the ordered list of field ids shared by every generated row.
type Schema []string

// BuildPool generates size values for every type in the catalog.
func BuildPool(r *rand.Rand, catalog Catalog, size int) Pool {
	pool := make(Pool, len(catalog))
	for _, t := range catalog {
		values := make([]Value, size)
		for i := range values {
			values[i] = t.Generate(r)
		}
		pool[t.Name()] = values
	}
	return pool
}

// BuildSchema allocates Assumptions() unique ids per type, in catalog order.
func BuildSchema(r *rand.Rand, catalog Catalog) (Schema, error) {
	total := 0
	for _, t := range catalog {
		total += t.Assumptions()
	}

	ids := make([]string, 0, total)
	for _, t := range catalog {
		for i := 0; i < t.Assumptions(); i++ {
			var err error
			if _, ids, err = AllocateID(r, t.Prefix(), ids); err != nil {
				return nil, fmt.Errorf("allocate %s id: %w", t.Name(), err)
			}
		}
	}
	return Schema(ids), nil
}
