package domain

// mutationThresholds are the per-attribute mutation probabilities out of 100,
// in canonical attribute order. Each attribute draws its check from a distinct
// decimal digit group of the seed, so mutations are independent of each other.
var mutationThresholds = [5]uint64{20, 25, 15, 30, 10}

// Mutate derives the evolved trait vector from an existing one and a seed.
// For each attribute, a two-digit slice of the seed is compared against the
// attribute's threshold; on a hit the attribute increments by one, wrapping
// from 9 back to 0. The wraparound keeps every output in-domain without a
// separate validation pass.
func Mutate(t TraitVector, seed uint64) TraitVector {
	values := [5]uint64{t.Background, t.Body, t.Eyes, t.Mouth, t.Accessory}
	for i := range values {
		if (seed/attributeDivisors[i])%100 < mutationThresholds[i] {
			values[i] = (values[i] + 1) % TraitDomainSize
		}
	}

	return TraitVector{
		Background: values[0],
		Body:       values[1],
		Eyes:       values[2],
		Mouth:      values[3],
		Accessory:  values[4],
	}
}
