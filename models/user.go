package models

import "time"

type Address struct {
	ID    string `json:"id" bson:"id"`
	Line1 string `json:"line1" bson:"line1"`
	Line2 string `json:"line2,omitempty" bson:"line2,omitempty"`
	City  string `json:"city" bson:"city"`
	State string `json:"state" bson:"state"`
	Zip   string `json:"zip" bson:"zip"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// PaymentMethod holds display data only. Raw card numbers never reach
// this service.
type PaymentMethod struct {
	ID          string `json:"id" bson:"id"`
	Type        string `json:"type" bson:"type"` // card, upi, netbanking
	Last4       string `json:"last4,omitempty" bson:"last4,omitempty"`
	Brand       string `json:"brand,omitempty" bson:"brand,omitempty"`
	ExpiryMonth int    `json:"expiryMonth,omitempty" bson:"expiryMonth,omitempty"`
	ExpiryYear  int    `json:"expiryYear,omitempty" bson:"expiryYear,omitempty"`
	UpiID       string `json:"upiId,omitempty" bson:"upiId,omitempty"`
}

type User struct {
	ID             string          `json:"_id" bson:"_id"`
	Name           string          `json:"name" bson:"name"`
	Email          string          `json:"email" bson:"email"`
	Password       string          `json:"-" bson:"password,omitempty"`
	Phone          string          `json:"phone,omitempty" bson:"phone,omitempty"`
	Addresses      []Address       `json:"addresses" bson:"addresses"`
	PaymentMethods []PaymentMethod `json:"paymentMethods" bson:"paymentMethods"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt" bson:"updatedAt"`
}
