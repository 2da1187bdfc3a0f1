package models

import "time"

type Review struct {
	ReviewID   string    `json:"reviewid" bson:"reviewid"`
	User       string    `json:"user" bson:"user"`
	Product    string    `json:"product,omitempty" bson:"product,omitempty"`
	Farmer     string    `json:"farmer,omitempty" bson:"farmer,omitempty"`
	Order      string    `json:"order" bson:"order"`
	Rating     int       `json:"rating" bson:"rating"`
	Comment    string    `json:"comment" bson:"comment"`
	Images     []string  `json:"images,omitempty" bson:"images,omitempty"`
	IsVerified bool      `json:"isVerified" bson:"isVerified"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
