package domain

import (
	"time"
)

// AffiliateLink represents a tracked redirect to a vendor URL
// Table: affiliate_links
//
// The clicks column is a durable fallback counter. The fast Redis counter is
// the primary read path and click_events rows are the exact ground truth; the
// three are deliberately not reconciled.
type AffiliateLink struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	PostID      *string   `gorm:"column:post_id;index" json:"post_id"`
	URL         string    `gorm:"column:url" json:"url"`
	ProductName string    `gorm:"column:product_name" json:"product_name"`
	Provider    string    `gorm:"column:provider" json:"provider"`
	Clicks      int       `gorm:"column:clicks;default:0" json:"clicks"`
	Conversions int       `gorm:"column:conversions;default:0" json:"conversions"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for AffiliateLink model
func (AffiliateLink) TableName() string {
	return "affiliate_links"
}

// ClickEvent represents one durable record of a visit to a tracked redirect
// Table: click_events
type ClickEvent struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	LinkID    string    `gorm:"column:link_id;index;not null" json:"link_id"`
	Referrer  *string   `gorm:"column:referrer" json:"referrer"`
	UserAgent *string   `gorm:"column:user_agent" json:"user_agent"`
	Country   *string   `gorm:"column:country" json:"country"`
	Timestamp time.Time `gorm:"column:timestamp" json:"timestamp"`
}

// TableName specifies the table name for ClickEvent model
func (ClickEvent) TableName() string {
	return "click_events"
}

// CreateLinkRequest is the request body for creating an affiliate link
type CreateLinkRequest struct {
	PostID      *string `json:"post_id"`
	URL         string  `json:"url" binding:"required,url"`
	ProductName string  `json:"product_name" binding:"required"`
	Provider    string  `json:"provider" binding:"required"`
}

// LinkStatsResponse is the AffiliateLink with the clicks field resolved
// against the fast counter (cache value wins when present).
type LinkStatsResponse struct {
	ID          string    `json:"id"`
	PostID      *string   `json:"post_id"`
	URL         string    `json:"url"`
	ProductName string    `json:"product_name"`
	Provider    string    `json:"provider"`
	Clicks      int       `json:"clicks"`
	Conversions int       `json:"conversions"`
	CreatedAt   time.Time `json:"created_at"`
}

// LinkSummary is an AffiliateLink together with its exact click event count,
// used by the admin dashboard listing.
type LinkSummary struct {
	AffiliateLink
	EventCount int64 `json:"event_count"`
}

// ClickContext carries the request metadata captured on a redirect.
// Nil fields mean the header was absent.
type ClickContext struct {
	Referrer  *string
	UserAgent *string
	Country   *string
}
