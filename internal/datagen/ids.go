package datagen

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
)

// ErrIDSpaceExhausted is returned when every suffix of a prefix is already taken.
var ErrIDSpaceExhausted = errors.New("field id space exhausted")

// AllocateID picks prefix plus a random suffix in [100, 999] that does not
// collide with any id in taken, regardless of prefix. It returns the new id
// and taken with the id appended.
func AllocateID(r *rand.Rand, prefix string, taken []string) (string, []string, error) {
	used := 0
	for _, id := range taken {
		if strings.HasPrefix(id, prefix) && len(id) == len(prefix)+3 {
			used++
		}
	}
	if used >= maxAssumptionsPerType {
		return "", taken, fmt.Errorf("prefix %q: %w", prefix, ErrIDSpaceExhausted)
	}

	id := prefix + strconv.Itoa(randIntRange(r, 100, 999))
	for slices.Contains(taken, id) {
		id = prefix + strconv.Itoa(randIntRange(r, 100, 999))
	}
	return id, append(taken, id), nil
}
