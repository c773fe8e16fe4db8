package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DiscountedPrice float64   `json:"discountedPrice,omitempty"`
	Image           string    `json:"image"`
	Brand           string    `json:"brand"`
	Fragrance       string    `json:"fragrance"`
	Size            string    `json:"size"`
	Quantity        int       `json:"quantity"`
	Rating          float64   `json:"rating"`
	Reviews         int       `json:"reviews"`
	Category        string    `json:"category"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
