package datagen

import (
	"fmt"
	"math/rand/v2"
)

// Value is a single JSON leaf: a string for dates and text, a float64 for numerics.
type Value any

// FieldType describes one kind of simulated field.
type FieldType interface {
	// Name is the stable type name used as the pool key.
	Name() string
	// Prefix is the two-digit prefix of every field id of this type.
	Prefix() string
	// Assumptions is how many fields of this type appear in the schema.
	Assumptions() int
	// Generate produces one fresh value.
	Generate(r *rand.Rand) Value
}

// Type names.
const (
	TypeDate            = "date"
	TypeTextCode        = "text_code"
	TypeTextShort       = "text_short"
	TypeTextLong        = "text_long"
	TypeNumericCurrency = "numeric_currency"
	TypeNumericFraction = "numeric_fraction"
)

// maxAssumptionsPerType is the size of the three-digit suffix space [100, 999].
const maxAssumptionsPerType = 900

type typeInfo struct {
	name        string
	prefix      string
	assumptions int
}

func (t typeInfo) Name() string     { return t.name }
func (t typeInfo) Prefix() string   { return t.prefix }
func (t typeInfo) Assumptions() int { return t.assumptions }

type dateType struct{ typeInfo }

func (dateType) Generate(r *rand.Rand) Value { return randomDate(r) }

type textCodeType struct{ typeInfo }

func (textCodeType) Generate(r *rand.Rand) Value { return randomCode(r) }

type textShortType struct{ typeInfo }

func (textShortType) Generate(r *rand.Rand) Value {
	return titleSlug(slugWords(r, randIntRange(r, 1, 5)))
}

type textLongType struct{ typeInfo }

func (textLongType) Generate(r *rand.Rand) Value {
	return sentenceSlug(slugWords(r, randIntRange(r, 5, 15)))
}

type numericCurrencyType struct{ typeInfo }

func (numericCurrencyType) Generate(r *rand.Rand) Value { return randomCurrency(r) }

type numericFractionType struct{ typeInfo }

func (numericFractionType) Generate(r *rand.Rand) Value { return randomFraction(r) }

// Counts holds the number of assumptions per field type.
type Counts struct {
	Date            int
	TextCode        int
	TextShort       int
	TextLong        int
	NumericCurrency int
	NumericFraction int
}

// DefaultCounts returns the stock assumption mix.
func DefaultCounts() Counts {
	return Counts{
		Date:            5,
		TextCode:        5,
		TextShort:       5,
		TextLong:        5,
		NumericCurrency: 20,
		NumericFraction: 10,
	}
}

// Total is the schema length the counts produce.
func (c Counts) Total() int {
	return c.Date + c.TextCode + c.TextShort + c.TextLong + c.NumericCurrency + c.NumericFraction
}

// Validate rejects negative counts and counts the id space cannot hold.
func (c Counts) Validate() error {
	for _, t := range NewCatalog(c) {
		n := t.Assumptions()
		if n < 0 {
			return fmt.Errorf("%s assumptions must not be negative (got %d)", t.Name(), n)
		}
		if n > maxAssumptionsPerType {
			return fmt.Errorf("%s assumptions cannot exceed %d (got %d)", t.Name(), maxAssumptionsPerType, n)
		}
	}
	return nil
}

// Catalog is the ordered list of field types. Order determines schema layout.
type Catalog []FieldType

// NewCatalog builds the six field types in their fixed order.
func NewCatalog(c Counts) Catalog {
	return Catalog{
		dateType{typeInfo{TypeDate, "20", c.Date}},
		textCodeType{typeInfo{TypeTextCode, "30", c.TextCode}},
		textShortType{typeInfo{TypeTextShort, "31", c.TextShort}},
		textLongType{typeInfo{TypeTextLong, "32", c.TextLong}},
		numericCurrencyType{typeInfo{TypeNumericCurrency, "40", c.NumericCurrency}},
		numericFractionType{typeInfo{TypeNumericFraction, "41", c.NumericFraction}},
	}
}

// Lookup returns the field type with the given name.
func (c Catalog) Lookup(name string) (FieldType, bool) {
	for _, t := range c {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}
