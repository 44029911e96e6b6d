// Package town holds the game's places, the things to do there and the shop
// catalog.
package town

import "github.com/jwebster45206/pet-adventure/pkg/state"

// Place describes a town location.
type Place struct {
	ID          state.Location `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Rooms       []string       `json:"rooms,omitempty"`
}

var places = []Place{
	{ID: state.LocationCenter, Name: "Town Center", Description: "The heart of town. Paths lead everywhere from here."},
	{ID: state.LocationHome, Name: "Home", Description: "Your cozy house. Feed, wash and rest with your pet.", Rooms: []string{"kitchen", "bathroom", "bedroom"}},
	{ID: state.LocationShop, Name: "Pet Shop", Description: "Buy food, medicine and accessories, or visit the vet.", Rooms: []string{"vet", "accessories", "supplies", "groceries", "household", "adoption"}},
	{ID: state.LocationSchool, Name: "School", Description: "Read, learn and practice math to earn coins.", Rooms: []string{"library", "classroom", "study"}},
	{ID: state.LocationPark, Name: "Park", Description: "Slides, swings and a sandpit. Watch out for wild animals!", Rooms: []string{"slide", "swings", "sandpit"}},
	{ID: state.LocationAdventure, Name: "Forest Adventure", Description: "A deep forest full of treasure and tougher foes."},
}

// Places returns every location in map order.
func Places() []Place {
	return append([]Place(nil), places...)
}

// LookupPlace finds a location's description.
func LookupPlace(id state.Location) (Place, bool) {
	for _, p := range places {
		if p.ID == id {
			return p, true
		}
	}
	return Place{}, false
}
