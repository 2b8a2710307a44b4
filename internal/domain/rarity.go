package domain

// rarityRule is the scoring step function for a single attribute: values
// strictly below rareBelow earn rareBonus, all others earn commonBonus.
type rarityRule struct {
	rareBelow   uint64
	rareBonus   uint64
	commonBonus uint64
}

// rarityRules is the fixed scoring table in canonical attribute order
// (background, body, eyes, mouth, accessory). The values are part of the
// collection's compatibility surface and must not change.
var rarityRules = [5]rarityRule{
	{rareBelow: 3, rareBonus: 50, commonBonus: 10},
	{rareBelow: 2, rareBonus: 40, commonBonus: 10},
	{rareBelow: 1, rareBonus: 100, commonBonus: 20},
	{rareBelow: 2, rareBonus: 30, commonBonus: 5},
	{rareBelow: 1, rareBonus: 80, commonBonus: 15},
}

// generationBonus is the per-generation additive rarity bonus.
const generationBonus = 25

func (r rarityRule) score(value uint64) uint64 {
	if value < r.rareBelow {
		return r.rareBonus
	}
	return r.commonBonus
}

// RarityScore maps a trait vector and a generation to the token's numeric
// rarity score: the sum of the five per-attribute bonuses plus a linear
// generation bonus.
func RarityScore(t TraitVector, generation uint64) uint64 {
	return rarityRules[0].score(t.Background) +
		rarityRules[1].score(t.Body) +
		rarityRules[2].score(t.Eyes) +
		rarityRules[3].score(t.Mouth) +
		rarityRules[4].score(t.Accessory) +
		generation*generationBonus
}
