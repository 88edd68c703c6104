package engine

// Effect is an item's effect descriptor. Only the kinds present are set.
type Effect struct {
	TraitBonus  map[Subject]int `json:"trait_bonus,omitempty" yaml:"trait_bonus,omitempty"`
	DamageBonus int             `json:"damage_bonus,omitempty" yaml:"damage_bonus,omitempty"`
	XPBonus     float64         `json:"xp_bonus,omitempty" yaml:"xp_bonus,omitempty"`
}

// Item is an immutable loot or reward record.
type Item struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Subject     Subject `json:"subject"`
	Effect      Effect  `json:"effect"`
	Description string  `json:"description,omitempty"`
}

// Inventory is the ordered item collection owned by one player.
type Inventory []Item

func (inv *Inventory) Add(item Item) {
	*inv = append(*inv, item)
}

// Remove takes out the first item with the given name.
func (inv *Inventory) Remove(name string) (Item, bool) {
	for i, it := range *inv {
		if it.Name != name {
			continue
		}
		*inv = append((*inv)[:i:i], (*inv)[i+1:]...)
		return it, true
	}
	return Item{}, false
}

func (inv Inventory) Len() int { return len(inv) }

func (inv Inventory) IsEmpty() bool { return len(inv) == 0 }

// Count returns how many copies of the named item are held.
func (inv Inventory) Count(name string) int {
	n := 0
	for _, it := range inv {
		if it.Name == name {
			n++
		}
	}
	return n
}
