package models

import "time"

// Product categories
var ProductCategories = []string{"vegetables", "fruits", "grains", "dairy", "poultry", "livestock", "other"}

// Sale units
var ProductUnits = []string{"kg", "g", "piece", "bunch", "crate", "bag", "liter"}

type ProductImage struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"public_id,omitempty" bson:"public_id,omitempty"`
}

type Coordinates struct {
	Lat float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng float64 `json:"lng,omitempty" bson:"lng,omitempty"`
}

type ProductLocation struct {
	County      string      `json:"county,omitempty" bson:"county,omitempty"`
	SubCounty   string      `json:"subCounty,omitempty" bson:"subCounty,omitempty"`
	Coordinates Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

type Product struct {
	ProductID    string          `json:"productid" bson:"productid"`
	Name         string          `json:"name" bson:"name"`
	Description  string          `json:"description" bson:"description"`
	Category     string          `json:"category" bson:"category"`
	Subcategory  string          `json:"subcategory" bson:"subcategory"`
	Price        float64         `json:"price" bson:"price"`
	Unit         string          `json:"unit" bson:"unit"`
	Quantity     int             `json:"quantity" bson:"quantity"`
	MinOrder     int             `json:"minOrder" bson:"minOrder"`
	Images       []ProductImage  `json:"images" bson:"images"`
	Farmer       string          `json:"farmer" bson:"farmer"`
	Location     ProductLocation `json:"location" bson:"location"`
	IsOrganic    bool            `json:"isOrganic" bson:"isOrganic"`
	IsFresh      bool            `json:"isFresh" bson:"isFresh"`
	HarvestDate  *time.Time      `json:"harvestDate,omitempty" bson:"harvestDate,omitempty"`
	ExpiryDate   *time.Time      `json:"expiryDate,omitempty" bson:"expiryDate,omitempty"`
	Tags         []string        `json:"tags" bson:"tags"`
	Rating       float64         `json:"rating" bson:"rating"`
	TotalReviews int             `json:"totalReviews" bson:"totalReviews"`
	IsAvailable  bool            `json:"isAvailable" bson:"isAvailable"`
	Views        int             `json:"views" bson:"views"`
	CreatedAt    time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt" bson:"updatedAt"`
}
