package domain

import "time"

// Restaurant is a place users can vote for.
type Restaurant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Dish is a menu item a restaurant offers on a single date.
// Price is kept in minor currency units.
type Dish struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Date         time.Time `json:"date"`
	Price        int64     `json:"price"`
}

// RestaurantMenu groups the dishes a restaurant serves on a date.
type RestaurantMenu struct {
	Restaurant Restaurant `json:"restaurant"`
	Dishes     []Dish     `json:"dishes"`
}
