package models

import "time"

// Message types
const (
	MsgText    = "text"
	MsgImage   = "image"
	MsgOffer   = "offer"
	MsgInquiry = "inquiry"
)

type Message struct {
	MessageID   string    `json:"messageid" bson:"messageid"`
	Sender      string    `json:"sender" bson:"sender"`
	Receiver    string    `json:"receiver" bson:"receiver"`
	Order       string    `json:"order,omitempty" bson:"order,omitempty"`
	Product     string    `json:"product,omitempty" bson:"product,omitempty"`
	Content     string    `json:"content" bson:"content"`
	IsRead      bool      `json:"isRead" bson:"isRead"`
	MessageType string    `json:"messageType" bson:"messageType"`
	ImageURL    string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Conversation is one row of the per-counterparty summary.
type Conversation struct {
	User        PublicUser `json:"user" bson:"user"`
	LastMessage Message    `json:"lastMessage" bson:"lastMessage"`
	UnreadCount int        `json:"unreadCount" bson:"unreadCount"`
}
