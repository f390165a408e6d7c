package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/providers/llm"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/utils"
	"github.com/yoockh/folio/internal/validation"
)

type BasicsInput struct {
	Name      string `json:"name" validate:"max=100"`
	Headline  string `json:"headline" validate:"max=160"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
	Phone     string `json:"phone" validate:"max=40"`
	Website   string `json:"website" validate:"omitempty,url,max=2048"`
	Location  string `json:"location" validate:"max=120"`
	Summary   string `json:"summary" validate:"max=4000"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url,max=2048"`
	Visible   *bool  `json:"visible"`
}

type BasicsService interface {
	Get(ctx context.Context, userID, portfolioID string) (*models.Basics, error)
	Upsert(ctx context.Context, userID, portfolioID string, in BasicsInput) (*models.Basics, error)
	// SuggestSummary drafts a professional summary; nothing is stored.
	SuggestSummary(ctx context.Context, userID, portfolioID string) (string, error)
}

type basicsService struct {
	portfolios pgrepo.PortfolioRepository
	sections   pgrepo.Sections
	llm        llm.Provider
	validate   *validation.Validator
	sites      siteInvalidator
}

func NewBasicsService(portfolios pgrepo.PortfolioRepository, sections pgrepo.Sections, provider llm.Provider, c cache.Cache, v *validation.Validator) BasicsService {
	return &basicsService{
		portfolios: portfolios,
		sections:   sections,
		llm:        provider,
		validate:   v,
		sites:      siteInvalidator{cache: c},
	}
}

func (s *basicsService) Get(ctx context.Context, userID, portfolioID string) (*models.Basics, error) {
	const op = "BasicsService.Get"

	if _, err := ownedPortfolio(ctx, s.portfolios, op, userID, portfolioID); err != nil {
		return nil, err
	}
	return s.load(ctx, op, portfolioID)
}

func (s *basicsService) load(ctx context.Context, op, portfolioID string) (*models.Basics, error) {
	b, err := s.portfolios.GetBasics(ctx, portfolioID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return &models.Basics{PortfolioID: portfolioID, Visible: true}, nil
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get basics", err)
	}
	return b, nil
}

func (s *basicsService) Upsert(ctx context.Context, userID, portfolioID string, in BasicsInput) (*models.Basics, error) {
	const op = "BasicsService.Upsert"

	if err := s.validate.Struct(op, in); err != nil {
		return nil, err
	}
	p, err := ownedPortfolio(ctx, s.portfolios, op, userID, portfolioID)
	if err != nil {
		return nil, err
	}
	cur, err := s.load(ctx, op, portfolioID)
	if err != nil {
		return nil, err
	}

	b := &models.Basics{
		PortfolioID: portfolioID,
		Name:        strings.TrimSpace(in.Name),
		Headline:    strings.TrimSpace(in.Headline),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Website:     strings.TrimSpace(in.Website),
		Location:    strings.TrimSpace(in.Location),
		Summary:     strings.TrimSpace(in.Summary),
		AvatarURL:   strings.TrimSpace(in.AvatarURL),
		Visible:     cur.Visible,
		UpdatedAt:   time.Now().UTC(),
	}
	if in.Visible != nil {
		b.Visible = *in.Visible
	}

	if err := s.portfolios.UpsertBasics(ctx, b); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save basics", err)
	}
	s.sites.invalidate(ctx, p)
	return b, nil
}

func (s *basicsService) SuggestSummary(ctx context.Context, userID, portfolioID string) (string, error) {
	const op = "BasicsService.SuggestSummary"

	if s.llm == nil {
		return "", utils.E(utils.CodeUnavailable, op, "text generation is not configured", nil)
	}
	if _, err := ownedPortfolio(ctx, s.portfolios, op, userID, portfolioID); err != nil {
		return "", err
	}

	b, err := s.load(ctx, op, portfolioID)
	if err != nil {
		return "", err
	}
	exp, err := s.sections.Experience.List(ctx, portfolioID, false)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to list experience", err)
	}
	skills, err := s.sections.Skills.List(ctx, portfolioID, false)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to list skills", err)
	}
	if b.Headline == "" && len(exp) == 0 && len(skills) == 0 {
		return "", utils.E(utils.CodeInvalidArgument, op, "add a headline, experience or skills first", nil)
	}

	out, err := llm.Complete(ctx, s.llm, summaryPrompt(b, exp, skills))
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to generate summary", err)
	}
	if out == "" {
		return "", utils.E(utils.CodeUnavailable, op, "empty summary generated", nil)
	}
	return out, nil
}

func summaryPrompt(b *models.Basics, exp []models.Experience, skills []models.Skill) string {
	var sb strings.Builder
	sb.WriteString("Write a professional summary of exactly three sentences for a portfolio website. ")
	sb.WriteString("Use the first person, no headings, no bullet points, no markdown.\n\n")

	if b.Name != "" {
		fmt.Fprintf(&sb, "Name: %s\n", b.Name)
	}
	if b.Headline != "" {
		fmt.Fprintf(&sb, "Headline: %s\n", b.Headline)
	}
	if b.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", b.Location)
	}

	if len(exp) > 0 {
		sb.WriteString("\nExperience:\n")
		for _, e := range exp {
			end := e.EndDate
			if e.Current {
				end = "present"
			}
			fmt.Fprintf(&sb, "- %s at %s (%s - %s)", e.Role, e.Company, e.StartDate, end)
			if e.Summary != "" {
				fmt.Fprintf(&sb, ": %s", e.Summary)
			}
			sb.WriteString("\n")
		}
	}

	if len(skills) > 0 {
		names := make([]string, 0, len(skills))
		for _, sk := range skills {
			names = append(names, sk.Name)
		}
		fmt.Fprintf(&sb, "\nSkills: %s\n", strings.Join(names, ", "))
	}
	return sb.String()
}
