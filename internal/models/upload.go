package models

import "time"

type Upload struct {
	ID        string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	ObjectKey string `gorm:"column:object_key;type:text" json:"object_key"`
	URL       string `gorm:"column:url;type:text" json:"url"`

	FileName string `gorm:"column:file_name;type:text" json:"file_name"`
	MimeType string `gorm:"column:mime_type;type:text" json:"mime_type"`
	Size     int64  `gorm:"column:size" json:"size"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Upload) TableName() string { return "uploads" }
