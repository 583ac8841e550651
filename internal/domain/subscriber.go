package domain

import (
	"time"
)

// SubscriberStatus represents the newsletter subscription state
type SubscriberStatus string

const (
	SubscriberStatusActive       SubscriberStatus = "active"
	SubscriberStatusUnsubscribed SubscriberStatus = "unsubscribed"
)

// Subscriber represents a newsletter subscriber
// Table: subscribers
type Subscriber struct {
	ID             string           `gorm:"column:id;primaryKey" json:"id"`
	Email          string           `gorm:"column:email;uniqueIndex" json:"email"`
	Status         SubscriberStatus `gorm:"column:status;default:active" json:"status"`
	SubscribedAt   time.Time        `gorm:"column:subscribed_at" json:"subscribed_at"`
	UnsubscribedAt *time.Time       `gorm:"column:unsubscribed_at" json:"unsubscribed_at"`
}

// TableName specifies the table name for Subscriber model
func (Subscriber) TableName() string {
	return "subscribers"
}

// SubscribeRequest is the request body for subscribing to the newsletter
type SubscribeRequest struct {
	Email  string `json:"email" binding:"required,email"`
	Source string `json:"source"`
}

// UnsubscribeRequest is the request body for unsubscribing
type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}
