package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PageView struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PortfolioID string             `bson:"portfolio_id" json:"portfolio_id"`
	Path        string             `bson:"path" json:"path"`
	Referrer    string             `bson:"referrer,omitempty" json:"referrer,omitempty"`
	UserAgent   string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Timestamp   time.Time          `bson:"ts" json:"ts"`

	ExpiresAt time.Time `bson:"expires_at" json:"-"` // for TTL index
}

type DailyViews struct {
	Day   string `bson:"_id" json:"day"` // YYYY-MM-DD
	Count int64  `bson:"count" json:"count"`
}

type ViewSummary struct {
	PortfolioID string       `json:"portfolio_id"`
	Days        int          `json:"days"`
	Total       int64        `json:"total"`
	Daily       []DailyViews `json:"daily"`
}
