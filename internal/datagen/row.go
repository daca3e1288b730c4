package datagen

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Row maps a field id to its value for one generated record.
type Row map[string]Value

// BuildRow fills one value per schema field. Within each type's block the
// first pooled positions draw from the pool; the rest are generated fresh.
// The schema must have been built from the same catalog.
func BuildRow(r *rand.Rand, catalog Catalog, schema Schema, pool Pool, pooled int) Row {
	row := make(Row, len(schema))
	pos := 0
	for _, t := range catalog {
		samples := pool[t.Name()]
		for i := 0; i < t.Assumptions(); i++ {
			id := schema[pos]
			pos++
			if i < pooled && len(samples) > 0 {
				row[id] = samples[r.IntN(len(samples))]
			} else {
				row[id] = t.Generate(r)
			}
		}
	}
	return row
}

// Options controls value cardinality.
type Options struct {
	// PoolSize is the number of pre-generated values per type.
	PoolSize int
	// PooledAssumptions is how many leading fields of each type draw from the pool.
	PooledAssumptions int
}

// Validate checks the options are usable.
func (o Options) Validate() error {
	if o.PoolSize < 0 {
		return fmt.Errorf("pool size must not be negative (got %d)", o.PoolSize)
	}
	if o.PooledAssumptions < 0 {
		return fmt.Errorf("pooled assumptions must not be negative (got %d)", o.PooledAssumptions)
	}
	if o.PooledAssumptions > 0 && o.PoolSize == 0 {
		return errors.New("pool size must be at least 1 when pooled assumptions are used")
	}
	return nil
}

// Generator holds the pool and schema built once for a run.
type Generator struct {
	rng     *rand.Rand
	catalog Catalog
	pooled  int

	Pool   Pool
	Schema Schema
}

// NewGenerator builds the type pool, then the schema.
func NewGenerator(r *rand.Rand, catalog Catalog, opts Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pool := BuildPool(r, catalog, opts.PoolSize)
	schema, err := BuildSchema(r, catalog)
	if err != nil {
		return nil, err
	}
	return &Generator{
		rng:     r,
		catalog: catalog,
		pooled:  opts.PooledAssumptions,
		Pool:    pool,
		Schema:  schema,
	}, nil
}

// Row builds one fresh record over the generator's schema.
func (g *Generator) Row() Row {
	return BuildRow(g.rng, g.catalog, g.Schema, g.Pool, g.pooled)
}
