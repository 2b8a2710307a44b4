package domain

// Recombine derives an offspring trait vector from two parent vectors and a
// seed. Each attribute is inherited independently: a digit-group slice of the
// seed decides per attribute whether parent A's or parent B's value is taken,
// so offspring can mix attributes from both parents in any combination rather
// than copying a single whole genome.
//
// Recombination can only select values already present in the (validated)
// parents, so its output is in-domain by construction.
func Recombine(parentA, parentB TraitVector, seed uint64) TraitVector {
	a := [5]uint64{parentA.Background, parentA.Body, parentA.Eyes, parentA.Mouth, parentA.Accessory}
	b := [5]uint64{parentB.Background, parentB.Body, parentB.Eyes, parentB.Mouth, parentB.Accessory}

	var out [5]uint64
	for i := range out {
		if (seed/attributeDivisors[i])%2 == 0 {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}

	return TraitVector{
		Background: out[0],
		Body:       out[1],
		Eyes:       out[2],
		Mouth:      out[3],
		Accessory:  out[4],
	}
}
