package models

import "time"

// Review is a catalog review embedded in a Product. Order ratings
// (models.OrderRating) are a separate, independently owned mechanism.
type Review struct {
	UserID    string    `json:"userId" bson:"userId"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Product struct {
	ID            string    `json:"_id" bson:"_id"`
	Title         string    `json:"title" bson:"title"`
	Description   string    `json:"description" bson:"description"`
	Price         float64   `json:"price" bson:"price"`
	OriginalPrice float64   `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Discount      float64   `json:"discount,omitempty" bson:"discount,omitempty"`
	Images        []string  `json:"images" bson:"images"`
	Category      string    `json:"category" bson:"category"`
	Brand         string    `json:"brand,omitempty" bson:"brand,omitempty"`
	Type          string    `json:"type,omitempty" bson:"type,omitempty"`
	Rating        float64   `json:"rating" bson:"rating"`
	Stock         int       `json:"stock" bson:"stock"`
	Sizes         []string  `json:"sizes" bson:"sizes"`
	Colors        []string  `json:"colors" bson:"colors"`
	Reviews       []Review  `json:"reviews" bson:"reviews"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}
