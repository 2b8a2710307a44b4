package domain

const (
	// TraitDomainSize is the exclusive upper bound for every trait attribute value
	TraitDomainSize = 10

	// MaxGeneration is the terminal lifecycle generation for every token
	MaxGeneration = 5

	// MinGeneration is the generation assigned to freshly minted tokens
	MinGeneration = 1
)

// attributeDivisors are the decimal digit-group divisors used to slice a seed
// into five independent values, one per attribute in canonical order
// (background, body, eyes, mouth, accessory).
var attributeDivisors = [5]uint64{1, 10, 100, 1000, 10000}

// TraitVector is the fixed 5-dimensional attribute tuple describing a token's
// generated characteristics. Every attribute lies in [0, TraitDomainSize).
type TraitVector struct {
	Background uint64 `json:"background"`
	Body       uint64 `json:"body"`
	Eyes       uint64 `json:"eyes"`
	Mouth      uint64 `json:"mouth"`
	Accessory  uint64 `json:"accessory"`
}

// Valid reports whether every attribute lies in the legal domain [0, TraitDomainSize).
func (t TraitVector) Valid() bool {
	return t.Background < TraitDomainSize &&
		t.Body < TraitDomainSize &&
		t.Eyes < TraitDomainSize &&
		t.Mouth < TraitDomainSize &&
		t.Accessory < TraitDomainSize
}

// DeriveTraits generates the trait vector for a freshly minted token from its
// generation seed. Each attribute takes a distinct decimal digit group of the
// seed; the accessory is additionally offset by the mint block height before
// reduction, so two identical seeds minted at different heights still differ.
func DeriveTraits(seed uint64, blockHeight uint64) TraitVector {
	return TraitVector{
		Background: (seed / attributeDivisors[0]) % TraitDomainSize,
		Body:       (seed / attributeDivisors[1]) % TraitDomainSize,
		Eyes:       (seed / attributeDivisors[2]) % TraitDomainSize,
		Mouth:      (seed / attributeDivisors[3]) % TraitDomainSize,
		Accessory:  (seed/attributeDivisors[4] + blockHeight) % TraitDomainSize,
	}
}
