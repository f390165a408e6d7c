package postgres

import (
	"context"

	"github.com/yoockh/folio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	GetByOrganization(ctx context.Context, orgID string) (*models.Subscription, error)
	GetByProviderSubscriptionID(ctx context.Context, providerSubID string) (*models.Subscription, error)
	Upsert(ctx context.Context, s *models.Subscription) error
	List(ctx context.Context, limit, offset int) ([]models.Subscription, error)
}

type subscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) GetByOrganization(ctx context.Context, orgID string) (*models.Subscription, error) {
	var s models.Subscription
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Take(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *subscriptionRepo) GetByProviderSubscriptionID(ctx context.Context, providerSubID string) (*models.Subscription, error) {
	var s models.Subscription
	err := r.db.WithContext(ctx).
		Where("provider_subscription_id = ?", providerSubID).
		Take(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *subscriptionRepo) Upsert(ctx context.Context, s *models.Subscription) error {
	return translate(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "organization_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"plan", "status", "provider_customer_id", "provider_subscription_id", "current_period_end", "updated_at",
			}),
		}).
		Create(s).Error)
}

func (r *subscriptionRepo) List(ctx context.Context, limit, offset int) ([]models.Subscription, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []models.Subscription
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, translate(err)
}
