package engine

const (
	// LootDropChance is the independent chance of a drop on victory.
	LootDropChance = 0.3
	// LootSubjectBias is the chance a drop is drawn from the enemy's subject.
	LootSubjectBias = 0.7
)

var lootTable = []Item{
	{
		Name:        "Math Textbook",
		Type:        "book",
		Subject:     SubjectMath,
		Effect:      Effect{TraitBonus: map[Subject]int{SubjectMath: 5}},
		Description: "A comprehensive math textbook. Grants +5 to Math trait.",
	},
	{
		Name:        "Science Journal",
		Type:        "book",
		Subject:     SubjectScience,
		Effect:      Effect{TraitBonus: map[Subject]int{SubjectScience: 5}},
		Description: "A scientific journal with the latest discoveries. Grants +5 to Science trait.",
	},
	{
		Name:        "History Scroll",
		Type:        "book",
		Subject:     SubjectHistory,
		Effect:      Effect{TraitBonus: map[Subject]int{SubjectHistory: 5}},
		Description: "An ancient scroll containing historical knowledge. Grants +5 to History trait.",
	},
	{
		Name:        "Precision Compass",
		Type:        "tool",
		Subject:     SubjectMath,
		Effect:      Effect{DamageBonus: 2},
		Description: "A precision drawing compass. Increases Math damage by 2.",
	},
	{
		Name:        "Microscope",
		Type:        "tool",
		Subject:     SubjectScience,
		Effect:      Effect{DamageBonus: 2},
		Description: "A powerful microscope. Increases Science damage by 2.",
	},
	{
		Name:        "Antique Map",
		Type:        "tool",
		Subject:     SubjectHistory,
		Effect:      Effect{DamageBonus: 2},
		Description: "An antique map with historical routes. Increases History damage by 2.",
	},
}

// RollLoot decides whether a victory drops an item and which one.
func RollLoot(rng Rand, subject Subject) (Item, bool) {
	if rng.Float64() >= LootDropChance {
		return Item{}, false
	}
	return PickLoot(rng, subject), true
}

// PickLoot draws one item, preferring the given subject when it has any.
func PickLoot(rng Rand, subject Subject) Item {
	var matching []Item
	for _, it := range lootTable {
		if it.Subject == subject {
			matching = append(matching, it)
		}
	}
	if len(matching) > 0 && rng.Float64() < LootSubjectBias {
		return matching[rng.Intn(len(matching))]
	}
	return lootTable[rng.Intn(len(lootTable))]
}
