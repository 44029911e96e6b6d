package actor

// ItemCategory groups inventory items for display.
type ItemCategory string

const (
	CategoryFood      ItemCategory = "food"
	CategoryToy       ItemCategory = "toy"
	CategoryMedicine  ItemCategory = "medicine"
	CategoryAccessory ItemCategory = "accessory"
)

// InventoryItem is a stack of identical items held by the player.
type InventoryItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    ItemCategory `json:"category"`
	Effect      Effect       `json:"effect"`
	Price       int          `json:"price"`
	Quantity    int          `json:"quantity"`
}

// AddItem stacks item onto an existing entry with the same ID or appends it.
func (p *Player) AddItem(item InventoryItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	for i := range p.Inventory {
		if p.Inventory[i].ID == item.ID {
			p.Inventory[i].Quantity += item.Quantity
			return
		}
	}
	p.Inventory = append(p.Inventory, item)
}

// RemoveItem takes one unit of the item away, dropping the entry when the
// last unit goes. It reports whether the item was held.
func (p *Player) RemoveItem(id string) bool {
	for i := range p.Inventory {
		if p.Inventory[i].ID != id {
			continue
		}
		if p.Inventory[i].Quantity > 1 {
			p.Inventory[i].Quantity--
			return true
		}
		p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
		return true
	}
	return false
}

// FindItem returns the held stack with the given ID.
func (p *Player) FindItem(id string) (InventoryItem, bool) {
	for _, it := range p.Inventory {
		if it.ID == id {
			return it, true
		}
	}
	return InventoryItem{}, false
}

// ItemsByCategory groups the inventory. The "all" key holds every item.
func (p *Player) ItemsByCategory() map[string][]InventoryItem {
	out := map[string][]InventoryItem{
		"all":                     append([]InventoryItem(nil), p.Inventory...),
		string(CategoryFood):      {},
		string(CategoryToy):       {},
		string(CategoryMedicine):  {},
		string(CategoryAccessory): {},
	}
	for _, it := range p.Inventory {
		if _, ok := out[string(it.Category)]; ok {
			out[string(it.Category)] = append(out[string(it.Category)], it)
		}
	}
	return out
}
