package postgres

import (
	"context"

	"github.com/yoockh/folio/internal/models"
	"gorm.io/gorm"
)

// SectionRepository persists one kind of repeated portfolio section.
// T is the record type, PT its pointer.
type SectionRepository[T any, PT interface {
	*T
	models.Section
}] interface {
	List(ctx context.Context, portfolioID string, visibleOnly bool) ([]T, error)
	Get(ctx context.Context, portfolioID, id string) (PT, error)
	// Append stores item after the last existing position.
	Append(ctx context.Context, item PT) error
	Save(ctx context.Context, item PT) error
	Delete(ctx context.Context, portfolioID, id string) error
	SetPositions(ctx context.Context, portfolioID string, ids []string) error
}

type sectionRepo[T any, PT interface {
	*T
	models.Section
}] struct {
	db *gorm.DB
}

func NewSectionRepo[T any, PT interface {
	*T
	models.Section
}](db *gorm.DB) SectionRepository[T, PT] {
	return &sectionRepo[T, PT]{db: db}
}

func (r *sectionRepo[T, PT]) List(ctx context.Context, portfolioID string, visibleOnly bool) ([]T, error) {
	q := r.db.WithContext(ctx).Where("portfolio_id = ?", portfolioID)
	if visibleOnly {
		q = q.Where("visible = ?", true)
	}
	out := []T{}
	err := q.Order("position ASC").Order("created_at ASC").Find(&out).Error
	return out, translate(err)
}

func (r *sectionRepo[T, PT]) Get(ctx context.Context, portfolioID, id string) (PT, error) {
	row := PT(new(T))
	err := r.db.WithContext(ctx).
		Where("id = ? AND portfolio_id = ?", id, portfolioID).
		Take(row).Error
	if err != nil {
		return nil, translate(err)
	}
	return row, nil
}

func (r *sectionRepo[T, PT]) Append(ctx context.Context, item PT) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Model(PT(new(T))).
			Where("portfolio_id = ?", item.Item().PortfolioID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&last).Error
		if err != nil {
			return err
		}
		item.Item().Position = last + 1
		return tx.Create(item).Error
	}))
}

func (r *sectionRepo[T, PT]) Save(ctx context.Context, item PT) error {
	return translate(r.db.WithContext(ctx).Save(item).Error)
}

func (r *sectionRepo[T, PT]) Delete(ctx context.Context, portfolioID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND portfolio_id = ?", id, portfolioID).
		Delete(PT(new(T)))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *sectionRepo[T, PT]) SetPositions(ctx context.Context, portfolioID string, ids []string) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			err := tx.Model(PT(new(T))).
				Where("id = ? AND portfolio_id = ?", id, portfolioID).
				Update("position", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	}))
}

// Sections bundles the repository of every section kind.
type Sections struct {
	Experience     SectionRepository[models.Experience, *models.Experience]
	Education      SectionRepository[models.Education, *models.Education]
	Skills         SectionRepository[models.Skill, *models.Skill]
	Projects       SectionRepository[models.Project, *models.Project]
	Hackathons     SectionRepository[models.Hackathon, *models.Hackathon]
	Certifications SectionRepository[models.Certification, *models.Certification]
	Profiles       SectionRepository[models.Profile, *models.Profile]
}

func NewSections(db *gorm.DB) Sections {
	return Sections{
		Experience:     NewSectionRepo[models.Experience](db),
		Education:      NewSectionRepo[models.Education](db),
		Skills:         NewSectionRepo[models.Skill](db),
		Projects:       NewSectionRepo[models.Project](db),
		Hackathons:     NewSectionRepo[models.Hackathon](db),
		Certifications: NewSectionRepo[models.Certification](db),
		Profiles:       NewSectionRepo[models.Profile](db),
	}
}
