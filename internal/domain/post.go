package domain

import (
	"time"
)

// PostStatus represents the publication state of a post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// Post represents a blog post
// Table: posts
type Post struct {
	ID             string     `gorm:"column:id;primaryKey" json:"id"`
	Slug           string     `gorm:"column:slug;uniqueIndex" json:"slug"`
	Title          string     `gorm:"column:title" json:"title"`
	Content        string     `gorm:"column:content;type:longtext" json:"content"`
	Excerpt        *string    `gorm:"column:excerpt" json:"excerpt"`
	CoverImage     *string    `gorm:"column:cover_image" json:"cover_image"`
	Status         PostStatus `gorm:"column:status;default:draft" json:"status"`
	SEOTitle       *string    `gorm:"column:seo_title" json:"seo_title"`
	SEODescription *string    `gorm:"column:seo_description" json:"seo_description"`
	Keywords       []string   `gorm:"column:keywords;serializer:json" json:"keywords"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
	PublishedAt    *time.Time `gorm:"column:published_at" json:"published_at"`
}

// TableName specifies the table name for Post model
func (Post) TableName() string {
	return "posts"
}

// CreatePostRequest is the request body for creating a post
type CreatePostRequest struct {
	Title          string     `json:"title" binding:"required,min=1,max=200"`
	Content        string     `json:"content" binding:"required"`
	Excerpt        *string    `json:"excerpt"`
	CoverImage     *string    `json:"cover_image" binding:"omitempty,url"`
	Status         PostStatus `json:"status" binding:"omitempty,oneof=draft published archived"`
	SEOTitle       *string    `json:"seo_title" binding:"omitempty,max=60"`
	SEODescription *string    `json:"seo_description" binding:"omitempty,max=160"`
	Keywords       []string   `json:"keywords"`
}

// UpdatePostRequest is the request body for updating a post.
// Pointer fields distinguish "not sent" from zero values.
type UpdatePostRequest struct {
	Title          *string     `json:"title" binding:"omitempty,min=1,max=200"`
	Content        *string     `json:"content"`
	Excerpt        *string     `json:"excerpt"`
	CoverImage     *string     `json:"cover_image" binding:"omitempty,url"`
	Status         *PostStatus `json:"status" binding:"omitempty,oneof=draft published archived"`
	SEOTitle       *string     `json:"seo_title" binding:"omitempty,max=60"`
	SEODescription *string     `json:"seo_description" binding:"omitempty,max=160"`
	Keywords       []string    `json:"keywords"`
}

// PostListResponse is the response for a page of posts
type PostListResponse struct {
	Posts []Post `json:"posts"`
	Total int64  `json:"total"`
}
