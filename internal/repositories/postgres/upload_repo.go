package postgres

import (
	"context"

	"github.com/yoockh/folio/internal/models"
	"gorm.io/gorm"
)

type UploadRepository interface {
	Insert(ctx context.Context, u *models.Upload) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Upload, error)
}

type uploadRepo struct {
	db *gorm.DB
}

func NewUploadRepo(db *gorm.DB) UploadRepository {
	return &uploadRepo{db: db}
}

func (r *uploadRepo) Insert(ctx context.Context, u *models.Upload) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *uploadRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Upload, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []models.Upload
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, translate(err)
}
