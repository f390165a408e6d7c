package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/models"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/utils"
	"github.com/yoockh/folio/internal/validation"
)

// SectionService manages one kind of repeated portfolio section.
type SectionService[T any, PT interface {
	*T
	models.Section
}] interface {
	List(ctx context.Context, userID, portfolioID string) ([]T, error)
	Add(ctx context.Context, userID, portfolioID string, item PT) (PT, error)
	// Update replaces the editable fields; position and visibility are kept.
	Update(ctx context.Context, userID, portfolioID, itemID string, item PT) (PT, error)
	Remove(ctx context.Context, userID, portfolioID, itemID string) error
	ToggleVisibility(ctx context.Context, userID, portfolioID, itemID string) (PT, error)
	// Reorder rewrites positions; ids must be exactly the section's items.
	Reorder(ctx context.Context, userID, portfolioID string, ids []string) ([]T, error)
}

type sectionService[T any, PT interface {
	*T
	models.Section
}] struct {
	kind       string
	portfolios pgrepo.PortfolioRepository
	items      pgrepo.SectionRepository[T, PT]
	validate   *validation.Validator
	sites      siteInvalidator
}

func NewSectionService[T any, PT interface {
	*T
	models.Section
}](kind string, portfolios pgrepo.PortfolioRepository, items pgrepo.SectionRepository[T, PT], c cache.Cache, v *validation.Validator) SectionService[T, PT] {
	return &sectionService[T, PT]{
		kind:       kind,
		portfolios: portfolios,
		items:      items,
		validate:   v,
		sites:      siteInvalidator{cache: c},
	}
}

func (s *sectionService[T, PT]) op(method string) string {
	return "SectionService[" + s.kind + "]." + method
}

func (s *sectionService[T, PT]) get(ctx context.Context, op, portfolioID, itemID string) (PT, error) {
	if itemID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "item id is required", nil)
	}
	it, err := s.items.Get(ctx, portfolioID, itemID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "item not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get item", err)
	}
	return it, nil
}

func (s *sectionService[T, PT]) List(ctx context.Context, userID, portfolioID string) ([]T, error) {
	op := s.op("List")

	if _, err := ownedPortfolio(ctx, s.portfolios, op, userID, portfolioID); err != nil {
		return nil, err
	}
	out, err := s.items.List(ctx, portfolioID, false)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list items", err)
	}
	return out, nil
}

func (s *sectionService[T, PT]) Add(ctx context.Context, userID, portfolioID string, item PT) (PT, error) {
	op := s.op("Add")

	if item == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "item is required", nil)
	}
	if err := s.validate.Struct(op, item); err != nil {
		return nil, err
	}
	p, err := ownedPortfolio(ctx, s.portfolios, op, userID, portfolioID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	it := item.Item()
	it.ID = uuid.NewString()
	it.PortfolioID = portfolioID
	it.CreatedAt = now
	it.UpdatedAt = now

	if err := s.items.Append(ctx, item); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to add item", err)
	}
	s.sites.invalidate(ctx, p)
	return item, nil
}

func (s *sectionService[T, PT]) Update(ctx context.Context, userID, portfolioID, itemID string, item PT) (PT, error) {
	op := s.op("Update")

	if item == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "item is required", nil)
	}
	if err := s.validate.Struct(op, item); err != nil {
		return nil, err
	}
	p, err := ownedPortfolio(ctx, s.portfolios, op, userID, portfolioID)
	if err != nil {
		return nil, err
	}
	cur, err := s.get(ctx, op, portfolioID, itemID)
	if err != nil {
		return nil, err
	}

	it := item.Item()
	*it = *cur.Item()
	it.UpdatedAt = time.Now().UTC()

	if err := s.items.Save(ctx, item); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update item", err)
	}
	s.sites.invalidate(ctx, p)
	return item, nil
}

func (s *sectionService[T, PT]) Remove(ctx context.Context, userID, portfolioID, itemID string) error {
	op := s.op("Remove")

	p, err := ownedPortfolio(ctx, s.portfolios, op, userID, portfolioID)
	if err != nil {
		return err
	}
	if err := s.items.Delete(ctx, portfolioID, itemID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "item not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to remove item", err)
	}
	s.sites.invalidate(ctx, p)
	return nil
}

func (s *sectionService[T, PT]) ToggleVisibility(ctx context.Context, userID, portfolioID, itemID string) (PT, error) {
	op := s.op("ToggleVisibility")

	p, err := ownedPortfolio(ctx, s.portfolios, op, userID, portfolioID)
	if err != nil {
		return nil, err
	}
	item, err := s.get(ctx, op, portfolioID, itemID)
	if err != nil {
		return nil, err
	}

	it := item.Item()
	it.Visible = !it.Visible
	it.UpdatedAt = time.Now().UTC()
	if err := s.items.Save(ctx, item); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to toggle item", err)
	}
	s.sites.invalidate(ctx, p)
	return item, nil
}

func (s *sectionService[T, PT]) Reorder(ctx context.Context, userID, portfolioID string, ids []string) ([]T, error) {
	op := s.op("Reorder")

	p, err := ownedPortfolio(ctx, s.portfolios, op, userID, portfolioID)
	if err != nil {
		return nil, err
	}
	cur, err := s.items.List(ctx, portfolioID, false)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list items", err)
	}

	if !sameIDSet[T, PT](cur, ids) {
		return nil, utils.Invalid(op, map[string]string{"ids": "Must list every item of the section exactly once"})
	}

	if err := s.items.SetPositions(ctx, portfolioID, ids); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to reorder items", err)
	}
	s.sites.invalidate(ctx, p)

	out, err := s.items.List(ctx, portfolioID, false)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list items", err)
	}
	return out, nil
}

func sameIDSet[T any, PT interface {
	*T
	models.Section
}](items []T, ids []string) bool {
	if len(items) != len(ids) {
		return false
	}
	want := make(map[string]bool, len(items))
	for i := range items {
		want[PT(&items[i]).Item().ID] = true
	}
	for _, id := range ids {
		if !want[id] {
			return false
		}
		delete(want, id)
	}
	return len(want) == 0
}
