package models

import "time"

type Organization struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OwnerID   string    `gorm:"column:owner_id;type:uuid;uniqueIndex" json:"owner_id"`
	Name      string    `gorm:"column:name;type:text" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Organization) TableName() string { return "organizations" }
