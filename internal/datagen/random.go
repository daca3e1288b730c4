package datagen

import (
	"math"
	"math/rand/v2"
	"time"
)

const codeAlphabet = "1234567890ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var (
	minDate = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxDate = time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// NewRand returns a PCG-backed source. A zero seed picks a time-based one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randIntRange returns a random int in [min, max] inclusive.
func randIntRange(r *rand.Rand, min, max int) int {
	if min >= max {
		return min
	}
	return min + r.IntN(max-min+1)
}

// randFloatRange returns a random float in [min, max).
func randFloatRange(r *rand.Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// truncate drops everything past precision fractional digits, toward negative infinity.
func truncate(v float64, precision int) float64 {
	power := math.Pow(10, float64(precision))
	return math.Floor(v*power) / power
}

func randomDate(r *rand.Rand) string {
	span := maxDate.Sub(minDate)
	offset := time.Duration(r.Int64N(int64(span) + 1))
	return minDate.Add(offset).Format(time.DateOnly)
}

func randomCode(r *rand.Rand) string {
	size := randIntRange(r, 5, 10)
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = codeAlphabet[r.IntN(len(codeAlphabet))]
	}
	return string(buf)
}

func randomCurrency(r *rand.Rand) float64 {
	precision := randIntRange(r, 0, 3)
	return truncate(randFloatRange(r, 1, 1e14), precision)
}

func randomFraction(r *rand.Rand) float64 {
	precision := randIntRange(r, 1, 15)
	return truncate(randFloatRange(r, -1, 1), precision)
}
