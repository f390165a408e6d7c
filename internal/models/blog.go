package models

import "time"

type Blog struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PortfolioID string `gorm:"column:portfolio_id;type:uuid;index;uniqueIndex:uniq_blog_slug,priority:1" json:"portfolio_id"`
	Slug        string `gorm:"column:slug;type:text;uniqueIndex:uniq_blog_slug,priority:2" json:"slug"`

	Title       string `gorm:"column:title;type:text" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Content     string `gorm:"column:content;type:text" json:"content,omitempty"`
	CoverImage  string `gorm:"column:cover_image;type:text" json:"cover_image"`

	Visible     bool       `gorm:"column:visible" json:"visible"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Blog) TableName() string { return "blogs" }
