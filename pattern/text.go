package pattern

import (
	"hash/fnv"
	"math/rand"
)

// FromText derives a deterministic pseudo-random input pattern from an
// arbitrary string: the text seeds an RNG, and each input cell fires with a
// density that grows mildly with text length, so a chat message becomes a
// stimulus when no digit demo applies.
func FromText(text string, nInputs int) []int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	density := 0.10 + 0.15*(float64(len(text))/100.0)
	if density < 0.05 {
		density = 0.05
	}
	if density > 0.35 {
		density = 0.35
	}

	out := make([]int, nInputs)
	for i := range out {
		if rng.Float64() < density {
			out[i] = 1
		}
	}
	return out
}
