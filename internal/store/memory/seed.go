package memory

import (
	"time"

	"storefront/api-service/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:              "1",
			Name:            "Black Opium",
			Description:     "A luxurious fragrance by Yves Saint Laurent with intoxicating notes of coffee, vanilla, and orange blossom.",
			Price:           129.99,
			DiscountedPrice: 99.99,
			Image:           "https://images.pexels.com/photos/28471438/pexels-photo-28471438.jpeg?w=500&h=500&fit=crop",
			Brand:           "Yves Saint Laurent",
			Fragrance:       "Oriental",
			Size:            "90ml",
			Quantity:        50,
			Rating:          4.8,
			Reviews:         245,
			Category:        "women",
			CreatedAt:       day("2024-01-01"),
			UpdatedAt:       day("2024-01-15"),
		},
		{
			ID:          "2",
			Name:        "Sauvage",
			Description: "A timeless masculine fragrance by Christian Dior featuring spicy ambroxan and fresh citrus notes.",
			Price:       119.99,
			Image:       "https://images.pexels.com/photos/14402573/pexels-photo-14402573.jpeg?w=500&h=500&fit=crop",
			Brand:       "Christian Dior",
			Fragrance:   "Aromatic Spicy",
			Size:        "100ml",
			Quantity:    45,
			Rating:      4.9,
			Reviews:     189,
			Category:    "men",
			CreatedAt:   day("2024-01-05"),
			UpdatedAt:   day("2024-01-20"),
		},
		{
			ID:          "3",
			Name:        "Boss Bottled",
			Description: "An iconic fragrance by Hugo Boss blending warm amber with aromatic notes and a hint of spice.",
			Price:       95.99,
			Image:       "https://images.pexels.com/photos/20753035/pexels-photo-20753035.jpeg?w=500&h=500&fit=crop",
			Brand:       "Hugo Boss",
			Fragrance:   "Woody Amber",
			Size:        "100ml",
			Quantity:    30,
			Rating:      4.7,
			Reviews:     312,
			Category:    "men",
			CreatedAt:   day("2024-01-10"),
			UpdatedAt:   day("2024-01-18"),
		},
		{
			ID:              "4",
			Name:            "Coco Noir",
			Description:     "An elegant oriental fragrance by Chanel with black amber, patchouli, and vanilla.",
			Price:           135.99,
			DiscountedPrice: 109.99,
			Image:           "https://images.pexels.com/photos/21067590/pexels-photo-21067590.jpeg?w=500&h=500&fit=crop",
			Brand:           "Chanel",
			Fragrance:       "Oriental",
			Size:            "100ml",
			Quantity:        60,
			Rating:          4.8,
			Reviews:         156,
			Category:        "women",
			CreatedAt:       day("2024-01-12"),
			UpdatedAt:       day("2024-01-19"),
		},
		{
			ID:          "5",
			Name:        "Bleu de Chanel",
			Description: "A refined aromatic fragrance by Chanel featuring ambroxan, sandalwood, and citrus notes.",
			Price:       129.99,
			Image:       "https://images.pexels.com/photos/9202894/pexels-photo-9202894.jpeg?w=500&h=500&fit=crop",
			Brand:       "Chanel",
			Fragrance:   "Aromatic",
			Size:        "100ml",
			Quantity:    40,
			Rating:      4.9,
			Reviews:     201,
			Category:    "men",
			CreatedAt:   day("2024-01-08"),
			UpdatedAt:   day("2024-01-17"),
		},
		{
			ID:          "6",
			Name:        "La Vie Est Belle",
			Description: "A sweet and luminous fragrance by Lancôme with notes of patchouli, praline, and iris.",
			Price:       119.99,
			Image:       "https://images.pexels.com/photos/1827234/pexels-photo-1827234.jpeg?w=500&h=500&fit=crop",
			Brand:       "Lancôme",
			Fragrance:   "Oriental Floral",
			Size:        "75ml",
			Quantity:    55,
			Rating:      4.6,
			Reviews:     128,
			Category:    "women",
			CreatedAt:   day("2024-01-03"),
			UpdatedAt:   day("2024-01-21"),
		},
	}
}
