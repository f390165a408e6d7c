package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/models"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/utils"
	"github.com/yoockh/folio/internal/validation"
)

const maxSlugLen = 120

type CreateBlogInput struct {
	PortfolioID string `json:"portfolio_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"max=120"`
	Description string `json:"description" validate:"max=500"`
	Content     string `json:"content" validate:"max=100000"`
	CoverImage  string `json:"cover_image" validate:"omitempty,url,max=2048"`
	Visible     bool   `json:"visible"`
}

type UpdateBlogInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Slug        *string `json:"slug" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Content     *string `json:"content" validate:"omitempty,max=100000"`
	CoverImage  *string `json:"cover_image" validate:"omitempty,url,max=2048"`
	Visible     *bool   `json:"visible"`
}

type BlogService interface {
	Create(ctx context.Context, userID string, in CreateBlogInput) (*models.Blog, error)
	List(ctx context.Context, userID, portfolioID string) ([]models.Blog, error)
	Get(ctx context.Context, userID, id string) (*models.Blog, error)
	Update(ctx context.Context, userID, id string, in UpdateBlogInput) (*models.Blog, error)
	Delete(ctx context.Context, userID, id string) error

	ListPublished(ctx context.Context, portfolioID string) ([]models.Blog, error)
	GetPublished(ctx context.Context, portfolioID, slug string) (*models.Blog, error)
}

type blogService struct {
	blogs      pgrepo.BlogRepository
	portfolios pgrepo.PortfolioRepository
	validate   *validation.Validator
	sites      siteInvalidator
}

func NewBlogService(blogs pgrepo.BlogRepository, portfolios pgrepo.PortfolioRepository, c cache.Cache, v *validation.Validator) BlogService {
	return &blogService{blogs: blogs, portfolios: portfolios, validate: v, sites: siteInvalidator{cache: c}}
}

// Slugify lower-cases s and joins its ASCII letter and digit runs with "-".
func Slugify(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	out := sb.String()
	if len(out) > maxSlugLen {
		out = strings.TrimRight(out[:maxSlugLen], "-")
	}
	return out
}

func (s *blogService) owned(ctx context.Context, op, userID, id string) (*models.Blog, *models.Portfolio, error) {
	if id == "" {
		return nil, nil, utils.E(utils.CodeInvalidArgument, op, "blog id is required", nil)
	}
	b, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, nil, utils.E(utils.CodeNotFound, op, "blog not found", err)
		}
		return nil, nil, utils.E(utils.CodeInternal, op, "failed to get blog", err)
	}
	p, err := ownedPortfolio(ctx, s.portfolios, op, userID, b.PortfolioID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			return nil, nil, utils.E(utils.CodeNotFound, op, "blog not found", nil)
		}
		return nil, nil, err
	}
	return b, p, nil
}

func (s *blogService) Create(ctx context.Context, userID string, in CreateBlogInput) (*models.Blog, error) {
	const op = "BlogService.Create"

	in.Title = strings.TrimSpace(in.Title)
	if err := s.validate.Struct(op, in); err != nil {
		return nil, err
	}
	p, err := ownedPortfolio(ctx, s.portfolios, op, userID, in.PortfolioID)
	if err != nil {
		return nil, err
	}

	slug := in.Slug
	if slug == "" {
		slug = in.Title
	}
	slug = Slugify(slug)
	if slug == "" {
		return nil, utils.Invalid(op, map[string]string{"slug": "Must contain letters or digits"})
	}

	now := time.Now().UTC()
	b := &models.Blog{
		ID:          uuid.NewString(),
		PortfolioID: in.PortfolioID,
		Slug:        slug,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Content:     in.Content,
		CoverImage:  strings.TrimSpace(in.CoverImage),
		Visible:     in.Visible,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if b.Visible {
		b.PublishedAt = &now
	}

	if err := s.blogs.Create(ctx, b); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "a post with this slug already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create blog", err)
	}
	s.sites.invalidate(ctx, p)
	return b, nil
}

func (s *blogService) List(ctx context.Context, userID, portfolioID string) ([]models.Blog, error) {
	const op = "BlogService.List"

	if _, err := ownedPortfolio(ctx, s.portfolios, op, userID, portfolioID); err != nil {
		return nil, err
	}
	out, err := s.blogs.List(ctx, portfolioID, false)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list blogs", err)
	}
	return out, nil
}

func (s *blogService) Get(ctx context.Context, userID, id string) (*models.Blog, error) {
	b, _, err := s.owned(ctx, "BlogService.Get", userID, id)
	return b, err
}

func (s *blogService) Update(ctx context.Context, userID, id string, in UpdateBlogInput) (*models.Blog, error) {
	const op = "BlogService.Update"

	in.Title, in.Description, in.CoverImage = trimmed(in.Title), trimmed(in.Description), trimmed(in.CoverImage)
	if err := s.validate.Struct(op, in); err != nil {
		return nil, err
	}
	b, p, err := s.owned(ctx, op, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Slug != nil {
		slug := Slugify(*in.Slug)
		if slug == "" {
			return nil, utils.Invalid(op, map[string]string{"slug": "Must contain letters or digits"})
		}
		b.Slug = slug
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Content != nil {
		b.Content = *in.Content
	}
	if in.CoverImage != nil {
		b.CoverImage = *in.CoverImage
	}

	now := time.Now().UTC()
	if in.Visible != nil {
		b.Visible = *in.Visible
		if b.Visible && b.PublishedAt == nil {
			b.PublishedAt = &now
		}
	}
	b.UpdatedAt = now

	if err := s.blogs.Update(ctx, b); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "a post with this slug already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update blog", err)
	}
	s.sites.invalidate(ctx, p)
	return b, nil
}

func (s *blogService) Delete(ctx context.Context, userID, id string) error {
	const op = "BlogService.Delete"

	_, p, err := s.owned(ctx, op, userID, id)
	if err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "blog not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete blog", err)
	}
	s.sites.invalidate(ctx, p)
	return nil
}

func (s *blogService) ListPublished(ctx context.Context, portfolioID string) ([]models.Blog, error) {
	const op = "BlogService.ListPublished"

	out, err := s.blogs.List(ctx, portfolioID, true)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list posts", err)
	}
	return out, nil
}

func (s *blogService) GetPublished(ctx context.Context, portfolioID, slug string) (*models.Blog, error) {
	const op = "BlogService.GetPublished"

	b, err := s.blogs.GetBySlug(ctx, portfolioID, slug)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "post not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get post", err)
	}
	if !b.Visible {
		return nil, utils.E(utils.CodeNotFound, op, "post not found", nil)
	}
	return b, nil
}
