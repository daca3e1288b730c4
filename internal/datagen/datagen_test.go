package datagen

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func fractionDigits(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func TestAllocateIDUniqueAcrossPrefixes(t *testing.T) {
	r := testRand()
	var taken []string
	for i := 0; i < 300; i++ {
		var err error
		_, taken, err = AllocateID(r, "20", taken)
		require.NoError(t, err)
		_, taken, err = AllocateID(r, "30", taken)
		require.NoError(t, err)
	}

	require.Len(t, taken, 600)
	seen := make(map[string]bool, len(taken))
	for _, id := range taken {
		require.Len(t, id, 5)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		n, err := strconv.Atoi(id[2:])
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100)
		require.LessOrEqual(t, n, 999)
	}
}

func TestAllocateIDResamplesOnCollision(t *testing.T) {
	// Every suffix but 555 is taken, so the only legal answer is 20555.
	var taken []string
	for n := 100; n <= 999; n++ {
		if n != 555 {
			taken = append(taken, fmt.Sprintf("20%d", n))
		}
	}

	id, updated, err := AllocateID(testRand(), "20", taken)
	require.NoError(t, err)
	require.Equal(t, "20555", id)
	require.Len(t, updated, 900)
	require.Equal(t, "20555", updated[len(updated)-1])
}

func TestAllocateIDExhausted(t *testing.T) {
	var taken []string
	for n := 100; n <= 999; n++ {
		taken = append(taken, fmt.Sprintf("41%d", n))
	}

	_, updated, err := AllocateID(testRand(), "41", taken)
	require.True(t, errors.Is(err, ErrIDSpaceExhausted))
	require.Len(t, updated, 900)

	// Other prefixes are unaffected.
	id, _, err := AllocateID(testRand(), "40", taken)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(id, "40"))
}

func TestBuildSchema(t *testing.T) {
	counts := DefaultCounts()
	catalog := NewCatalog(counts)

	schema, err := BuildSchema(testRand(), catalog)
	require.NoError(t, err)
	require.Len(t, schema, counts.Total())
	require.Len(t, schema, 50)

	seen := make(map[string]bool)
	for _, id := range schema {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	// Blocks follow catalog order.
	pos := 0
	for _, ft := range catalog {
		for i := 0; i < ft.Assumptions(); i++ {
			require.True(t, strings.HasPrefix(schema[pos], ft.Prefix()), "position %d: %s", pos, schema[pos])
			pos++
		}
	}
}

func TestCountsValidate(t *testing.T) {
	require.NoError(t, DefaultCounts().Validate())

	c := DefaultCounts()
	c.TextLong = -1
	require.Error(t, c.Validate())

	c = DefaultCounts()
	c.NumericFraction = 901
	require.Error(t, c.Validate())
}

func TestBuildPool(t *testing.T) {
	catalog := NewCatalog(DefaultCounts())
	pool := BuildPool(testRand(), catalog, 3)

	require.Len(t, pool, len(catalog))
	for _, ft := range catalog {
		require.Len(t, pool[ft.Name()], 3, ft.Name())
	}
}

func TestBuildRowUsesPoolForLeadingPositions(t *testing.T) {
	r := testRand()
	catalog := NewCatalog(DefaultCounts())
	pool := BuildPool(r, catalog, 3)
	schema, err := BuildSchema(r, catalog)
	require.NoError(t, err)

	// text_code block sits after the date block.
	codeStart := DefaultCounts().Date
	codePool := pool[TypeTextCode]
	require.Len(t, codePool, 3)

	for n := 0; n < 50; n++ {
		row := BuildRow(r, catalog, schema, pool, 2)
		require.Len(t, row, len(schema))
		for _, id := range schema {
			require.Contains(t, row, id)
		}
		require.Contains(t, codePool, row[schema[codeStart]])
		require.Contains(t, codePool, row[schema[codeStart+1]])
	}
}

func TestBuildRowFreshPositionsLeaveThePool(t *testing.T) {
	r := testRand()
	catalog := NewCatalog(DefaultCounts())
	pool := BuildPool(r, catalog, 3)
	schema, err := BuildSchema(r, catalog)
	require.NoError(t, err)

	var lastCurrency string
	pos := 0
	for _, ft := range catalog {
		pos += ft.Assumptions()
		if ft.Name() == TypeNumericCurrency {
			lastCurrency = schema[pos-1]
			break
		}
	}

	outside := 0
	for n := 0; n < 20; n++ {
		row := BuildRow(r, catalog, schema, pool, 2)
		if !slices.Contains(pool[TypeNumericCurrency], row[lastCurrency]) {
			outside++
		}
	}
	require.Greater(t, outside, 15)
}

func TestBuildRowZeroPooled(t *testing.T) {
	r := testRand()
	catalog := NewCatalog(Counts{TextCode: 4})
	schema, err := BuildSchema(r, catalog)
	require.NoError(t, err)

	row := BuildRow(r, catalog, schema, Pool{}, 0)
	require.Len(t, row, 4)
	for _, v := range row {
		require.IsType(t, "", v)
	}
}

func TestGenerators(t *testing.T) {
	r := testRand()
	catalog := NewCatalog(DefaultCounts())
	codeRe := regexp.MustCompile(`^[0-9A-Z]{5,10}$`)
	low := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	high := time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)

	for n := 0; n < 2000; n++ {
		for _, ft := range catalog {
			v := ft.Generate(r)
			switch ft.Name() {
			case TypeDate:
				s, ok := v.(string)
				require.True(t, ok)
				d, err := time.Parse(time.DateOnly, s)
				require.NoError(t, err)
				require.False(t, d.Before(low), s)
				require.False(t, d.After(high), s)
			case TypeTextCode:
				require.Regexp(t, codeRe, v)
			case TypeTextShort:
				words := strings.Fields(v.(string))
				require.GreaterOrEqual(t, len(words), 1)
				require.LessOrEqual(t, len(words), 5)
				for _, w := range words {
					require.Equal(t, strings.ToUpper(w[:1]), w[:1], v)
				}
			case TypeTextLong:
				words := strings.Fields(v.(string))
				require.GreaterOrEqual(t, len(words), 5)
				require.LessOrEqual(t, len(words), 15)
				require.Equal(t, strings.ToUpper(words[0][:1]), words[0][:1])
				for _, w := range words[1:] {
					require.Equal(t, strings.ToLower(w), w, v)
				}
			case TypeNumericCurrency:
				f, ok := v.(float64)
				require.True(t, ok)
				require.GreaterOrEqual(t, f, 0.0)
				require.Less(t, f, 1e14)
				require.LessOrEqual(t, fractionDigits(f), 3, "%v", f)
			case TypeNumericFraction:
				f, ok := v.(float64)
				require.True(t, ok)
				require.GreaterOrEqual(t, f, -1.0)
				require.LessOrEqual(t, f, 1.0)
				require.LessOrEqual(t, fractionDigits(f), 15, "%v", f)
			}
		}
	}
}

func TestTruncateFloorsTowardNegativeInfinity(t *testing.T) {
	require.Equal(t, 1.23, truncate(1.239, 2))
	require.Equal(t, -1.24, truncate(-1.231, 2))
	require.Equal(t, 12.0, truncate(12.999, 0))
}

func TestNewGenerator(t *testing.T) {
	catalog := NewCatalog(DefaultCounts())

	_, err := NewGenerator(testRand(), catalog, Options{PoolSize: 0, PooledAssumptions: 2})
	require.Error(t, err)

	g, err := NewGenerator(testRand(), catalog, Options{PoolSize: 20, PooledAssumptions: 2})
	require.NoError(t, err)
	require.Len(t, g.Schema, 50)
	require.Len(t, g.Pool[TypeDate], 20)

	row := g.Row()
	require.Len(t, row, 50)
}

func TestNewGeneratorSameSeedSameOutput(t *testing.T) {
	catalog := NewCatalog(DefaultCounts())
	opts := Options{PoolSize: 5, PooledAssumptions: 2}

	a, err := NewGenerator(NewRand(99), catalog, opts)
	require.NoError(t, err)
	b, err := NewGenerator(NewRand(99), catalog, opts)
	require.NoError(t, err)

	require.Equal(t, a.Schema, b.Schema)
	require.Equal(t, a.Row(), b.Row())
}
