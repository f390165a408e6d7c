package postgres

import (
	"context"

	"github.com/yoockh/folio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PortfolioRepository interface {
	Create(ctx context.Context, p *models.Portfolio, b *models.Basics) error
	GetByID(ctx context.Context, id string) (*models.Portfolio, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Portfolio, error)
	GetByCustomDomain(ctx context.Context, domain string) (*models.Portfolio, error)
	ListByUser(ctx context.Context, userID string) ([]models.Portfolio, error)
	CountByOrganization(ctx context.Context, orgID string) (int64, error)
	Update(ctx context.Context, p *models.Portfolio) error
	// Delete removes the portfolio together with its basics, sections and blogs.
	Delete(ctx context.Context, id string) error

	SetCustomDomain(ctx context.Context, id string, domain *string, status models.DomainStatus) error
	SetDomainStatus(ctx context.Context, domain string, status models.DomainStatus) error
	ListUnverifiedDomains(ctx context.Context, limit int) ([]string, error)

	GetBasics(ctx context.Context, portfolioID string) (*models.Basics, error)
	UpsertBasics(ctx context.Context, b *models.Basics) error
}

type portfolioRepo struct {
	db *gorm.DB
}

func NewPortfolioRepo(db *gorm.DB) PortfolioRepository {
	return &portfolioRepo{db: db}
}

func (r *portfolioRepo) Create(ctx context.Context, p *models.Portfolio, b *models.Basics) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		if b != nil {
			b.PortfolioID = p.ID
			return tx.Create(b).Error
		}
		return nil
	}))
}

func (r *portfolioRepo) take(ctx context.Context, query string, args ...any) (*models.Portfolio, error) {
	var p models.Portfolio
	err := r.db.WithContext(ctx).Where(query, args...).Take(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *portfolioRepo) GetByID(ctx context.Context, id string) (*models.Portfolio, error) {
	return r.take(ctx, "id = ?", id)
}

func (r *portfolioRepo) GetBySubdomain(ctx context.Context, subdomain string) (*models.Portfolio, error) {
	return r.take(ctx, "subdomain = ?", subdomain)
}

func (r *portfolioRepo) GetByCustomDomain(ctx context.Context, domain string) (*models.Portfolio, error) {
	return r.take(ctx, "custom_domain = ?", domain)
}

func (r *portfolioRepo) ListByUser(ctx context.Context, userID string) ([]models.Portfolio, error) {
	var out []models.Portfolio
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error
	return out, translate(err)
}

func (r *portfolioRepo) CountByOrganization(ctx context.Context, orgID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Portfolio{}).
		Where("organization_id = ?", orgID).
		Count(&n).Error
	return n, translate(err)
}

// Update writes the owner-editable columns only. Domain columns belong to
// SetCustomDomain and SetDomainStatus.
func (r *portfolioRepo) Update(ctx context.Context, p *models.Portfolio) error {
	res := r.db.WithContext(ctx).
		Model(p).
		Select("name", "subdomain", "template", "title", "description", "published", "updated_at").
		Updates(p)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *portfolioRepo) Delete(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		children := []any{
			&models.Experience{}, &models.Education{}, &models.Skill{}, &models.Project{},
			&models.Hackathon{}, &models.Certification{}, &models.Profile{},
			&models.Blog{}, &models.Basics{},
		}
		for _, m := range children {
			if err := tx.Where("portfolio_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&models.Portfolio{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

func (r *portfolioRepo) SetCustomDomain(ctx context.Context, id string, domain *string, status models.DomainStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Portfolio{}).
		Where("id = ?", id).
		Updates(map[string]any{"custom_domain": domain, "domain_status": status})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *portfolioRepo) SetDomainStatus(ctx context.Context, domain string, status models.DomainStatus) error {
	return translate(r.db.WithContext(ctx).
		Model(&models.Portfolio{}).
		Where("custom_domain = ?", domain).
		Update("domain_status", status).Error)
}

func (r *portfolioRepo) ListUnverifiedDomains(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 500
	}
	var out []string
	err := r.db.WithContext(ctx).
		Model(&models.Portfolio{}).
		Where("custom_domain IS NOT NULL AND domain_status <> ?", models.DomainValid).
		Order("updated_at ASC").
		Limit(limit).
		Pluck("custom_domain", &out).Error
	return out, translate(err)
}

func (r *portfolioRepo) GetBasics(ctx context.Context, portfolioID string) (*models.Basics, error) {
	var b models.Basics
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Take(&b).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *portfolioRepo) UpsertBasics(ctx context.Context, b *models.Basics) error {
	return translate(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "portfolio_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "headline", "email", "phone", "website", "location", "summary", "avatar_url", "visible", "updated_at",
			}),
		}).
		Create(b).Error)
}
