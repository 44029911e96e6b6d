package town

import (
	"fmt"

	"github.com/jwebster45206/pet-adventure/pkg/actor"
)

// AdoptionPrice is what a new pet costs at the shop.
const AdoptionPrice = 100

// ShopItem is an inventory item for sale in one section of the pet shop.
type ShopItem struct {
	Section string `json:"section"`
	actor.InventoryItem
}

func item(section, id, name, desc string, cat actor.ItemCategory, price int, fx actor.Effect) ShopItem {
	return ShopItem{
		Section: section,
		InventoryItem: actor.InventoryItem{
			ID: id, Name: name, Description: desc, Category: cat, Price: price, Effect: fx, Quantity: 1,
		},
	}
}

var shopItems = []ShopItem{
	item("supplies", "bandage", "Pet Bandages", "Patch up small scrapes", actor.CategoryMedicine, 15, petFx(actor.PropHealth, 10)),
	item("supplies", "medicine", "Pet Medicine", "Helps your pet feel better", actor.CategoryMedicine, 25, petFx(actor.PropHealth, 20)),
	item("supplies", "vitamin", "Pet Vitamins", "A happy, healthy pet", actor.CategoryMedicine, 30, petFx(actor.PropHappiness, 15)),

	item("groceries", "apple", "Apple", "Crunchy and sweet", actor.CategoryFood, 8, playerFx(actor.PropHealth, 12)),
	item("groceries", "bread", "Bread", "Fresh from the bakery", actor.CategoryFood, 10, playerFx(actor.PropHealth, 15)),
	item("groceries", "milk", "Milk", "Makes you stronger", actor.CategoryFood, 12, playerFx(actor.PropMaxHealth, 5)),
	item("groceries", "carrot", "Carrot", "A crunchy pet snack", actor.CategoryFood, 6, petFx(actor.PropHealth, 8)),
	item("groceries", "fish", "Fish", "A pet's favorite dinner", actor.CategoryFood, 18, petFx(actor.PropHealth, 20)),
	item("groceries", "rice", "Rice", "A filling meal", actor.CategoryFood, 15, playerFx(actor.PropHealth, 18)),

	item("household", "soap", "Pet Shampoo", "Bubbly and clean", actor.CategoryToy, 14, petFx(actor.PropHappiness, 12)),
	item("household", "brush", "Brush", "Soft and shiny fur", actor.CategoryToy, 22, petFx(actor.PropHappiness, 18)),
	item("household", "blanket", "Blanket", "A warm bed makes a tougher pet", actor.CategoryAccessory, 35, petFx(actor.PropMaxHealth, 8)),
}

// findPool is what a hamster's cheek pouch can turn up.
var findPool = []actor.InventoryItem{
	{ID: "food_1", Name: "Basic Pet Food", Description: "Simple but filling", Category: actor.CategoryFood, Price: 5, Quantity: 1, Effect: petFx(actor.PropHealth, 10)},
	{ID: "food_2", Name: "Premium Pet Food", Description: "The good stuff", Category: actor.CategoryFood, Price: 15, Quantity: 1, Effect: petFx(actor.PropHealth, 25)},
	{ID: "food_3", Name: "Tasty Treat", Description: "A little reward", Category: actor.CategoryFood, Price: 8, Quantity: 1, Effect: petFx(actor.PropHappiness, 10)},
	{ID: "med_1", Name: "Basic Medicine", Description: "For small boo-boos", Category: actor.CategoryMedicine, Price: 12, Quantity: 1, Effect: playerFx(actor.PropHealth, 15)},
	{ID: "med_2", Name: "Advanced Medicine", Description: "For big boo-boos", Category: actor.CategoryMedicine, Price: 25, Quantity: 1, Effect: playerFx(actor.PropHealth, 30)},
}

// ShopItems returns the shop catalog.
func ShopItems() []ShopItem {
	return append([]ShopItem(nil), shopItems...)
}

// LookupItem finds any known item, sold or findable, by ID.
func LookupItem(id string) (actor.InventoryItem, bool) {
	for _, it := range shopItems {
		if it.ID == id {
			return it.InventoryItem, true
		}
	}
	for _, it := range findPool {
		if it.ID == id {
			return it, true
		}
	}
	return actor.InventoryItem{}, false
}

// LookupShopItem finds an item that can be bought.
func LookupShopItem(id string) (ShopItem, bool) {
	for _, it := range shopItems {
		if it.ID == id {
			return it, true
		}
	}
	return ShopItem{}, false
}

// Buy charges the player and adds one unit to the inventory.
func Buy(player *actor.Player, it ShopItem) error {
	if err := Charge(player, it.Price); err != nil {
		return err
	}
	bought := it.InventoryItem
	bought.Quantity = 1
	player.AddItem(bought)
	return nil
}

// RandomFindItem draws one item from the find pool.
func RandomFindItem(r actor.Rand) actor.InventoryItem {
	return findPool[r.IntN(len(findPool))]
}

// UseItem applies a held item's effect and removes one unit.
func UseItem(player *actor.Player, pet *actor.Pet, id string) (actor.InventoryItem, error) {
	it, ok := player.FindItem(id)
	if !ok {
		return actor.InventoryItem{}, fmt.Errorf("item %s not in inventory", id)
	}
	if _, err := actor.ApplyEffect(it.Effect, player, pet); err != nil {
		return actor.InventoryItem{}, err
	}
	player.RemoveItem(id)
	return it, nil
}
