package postgres

import (
	"context"
	"time"

	"github.com/yoockh/folio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrganizationRepository interface {
	GetByOwner(ctx context.Context, ownerID string) (*models.Organization, error)
	// CreateIfMissing inserts o unless the owner already has an organization,
	// then returns the stored row.
	CreateIfMissing(ctx context.Context, o *models.Organization) (*models.Organization, error)
	UpdateName(ctx context.Context, id, name string) error
}

type organizationRepo struct {
	db *gorm.DB
}

func NewOrganizationRepo(db *gorm.DB) OrganizationRepository {
	return &organizationRepo{db: db}
}

func (r *organizationRepo) GetByOwner(ctx context.Context, ownerID string) (*models.Organization, error) {
	var o models.Organization
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Take(&o).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *organizationRepo) CreateIfMissing(ctx context.Context, o *models.Organization) (*models.Organization, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoNothing: true,
		}).
		Create(o).Error
	if err != nil {
		return nil, translate(err)
	}
	return r.GetByOwner(ctx, o.OwnerID)
}

func (r *organizationRepo) UpdateName(ctx context.Context, id, name string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Organization{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}
