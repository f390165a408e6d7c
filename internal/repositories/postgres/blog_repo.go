package postgres

import (
	"context"

	"github.com/yoockh/folio/internal/models"
	"gorm.io/gorm"
)

type BlogRepository interface {
	Create(ctx context.Context, b *models.Blog) error
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	GetBySlug(ctx context.Context, portfolioID, slug string) (*models.Blog, error)
	// List returns posts newest first; content is omitted.
	List(ctx context.Context, portfolioID string, visibleOnly bool) ([]models.Blog, error)
	Update(ctx context.Context, b *models.Blog) error
	Delete(ctx context.Context, id string) error
}

type blogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) BlogRepository {
	return &blogRepo{db: db}
}

func (r *blogRepo) Create(ctx context.Context, b *models.Blog) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *blogRepo) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	var b models.Blog
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&b).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *blogRepo) GetBySlug(ctx context.Context, portfolioID, slug string) (*models.Blog, error) {
	var b models.Blog
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ? AND slug = ?", portfolioID, slug).
		Take(&b).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *blogRepo) List(ctx context.Context, portfolioID string, visibleOnly bool) ([]models.Blog, error) {
	q := r.db.WithContext(ctx).
		Omit("content").
		Where("portfolio_id = ?", portfolioID)
	if visibleOnly {
		q = q.Where("visible = ?", true)
	}
	out := []models.Blog{}
	err := q.Order("COALESCE(published_at, created_at) DESC").Find(&out).Error
	return out, translate(err)
}

func (r *blogRepo) Update(ctx context.Context, b *models.Blog) error {
	return translate(r.db.WithContext(ctx).Save(b).Error)
}

func (r *blogRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Blog{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}
