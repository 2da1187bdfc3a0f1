package models

import "time"

// User roles
const (
	RoleFarmer     = "farmer"
	RoleWholesaler = "wholesaler"
	RoleRetailer   = "retailer"
	RoleAdmin      = "admin"
)

type UserLocation struct {
	County    string `json:"county,omitempty" bson:"county,omitempty"`
	SubCounty string `json:"subCounty,omitempty" bson:"subCounty,omitempty"`
	Ward      string `json:"ward,omitempty" bson:"ward,omitempty"`
}

type UserProfile struct {
	Location     UserLocation `json:"location" bson:"location"`
	FarmDetails  string       `json:"farmDetails,omitempty" bson:"farmDetails,omitempty"`
	BusinessName string       `json:"businessName,omitempty" bson:"businessName,omitempty"`
	BusinessType string       `json:"businessType,omitempty" bson:"businessType,omitempty"`
}

type User struct {
	UserID        string      `json:"userid" bson:"userid"`
	Name          string      `json:"name" bson:"name"`
	Email         string      `json:"email" bson:"email"`
	Phone         string      `json:"phone" bson:"phone"`
	Password      string      `json:"-" bson:"password"`
	Role          string      `json:"role" bson:"role"`
	Profile       UserProfile `json:"profile" bson:"profile"`
	Avatar        string      `json:"avatar" bson:"avatar"`
	IsVerified    bool        `json:"isVerified" bson:"isVerified"`
	Rating        float64     `json:"rating" bson:"rating"`
	TotalReviews  int         `json:"totalReviews" bson:"totalReviews"`
	RefreshToken  string      `json:"-" bson:"refreshToken,omitempty"`
	RefreshExpiry time.Time   `json:"-" bson:"refreshExpiry,omitempty"`
	LastLogin     time.Time   `json:"-" bson:"lastLogin,omitempty"`
	CreatedAt     time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// PublicUser is the counterparty shape returned by listings and
// conversations. Password and email never leave the server through it.
type PublicUser struct {
	UserID       string      `json:"userid" bson:"userid"`
	Name         string      `json:"name" bson:"name"`
	Phone        string      `json:"phone,omitempty" bson:"phone,omitempty"`
	Role         string      `json:"role" bson:"role"`
	Profile      UserProfile `json:"profile" bson:"profile"`
	Avatar       string      `json:"avatar" bson:"avatar"`
	Rating       float64     `json:"rating" bson:"rating"`
	TotalReviews int         `json:"totalReviews" bson:"totalReviews"`
}
