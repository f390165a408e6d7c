package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/folio/internal/models"
	pgrepo "github.com/yoockh/folio/internal/repositories/postgres"
	"github.com/yoockh/folio/internal/utils"
	"github.com/yoockh/folio/internal/validation"
)

const defaultOrganizationName = "Personal"

type RenameOrganizationInput struct {
	Name string `json:"name" validate:"required,max=80"`
}

type OrganizationService interface {
	// EnsureMine returns the caller's organization, creating it on first use.
	EnsureMine(ctx context.Context, userID string) (*models.Organization, error)
	Rename(ctx context.Context, userID string, in RenameOrganizationInput) (*models.Organization, error)
}

type organizationService struct {
	orgs     pgrepo.OrganizationRepository
	validate *validation.Validator
}

func NewOrganizationService(orgs pgrepo.OrganizationRepository, v *validation.Validator) OrganizationService {
	return &organizationService{orgs: orgs, validate: v}
}

func (s *organizationService) EnsureMine(ctx context.Context, userID string) (*models.Organization, error) {
	const op = "OrganizationService.EnsureMine"

	if userID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}

	o, err := s.orgs.GetByOwner(ctx, userID)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeInternal, op, "failed to get organization", err)
	}

	now := time.Now().UTC()
	o, err = s.orgs.CreateIfMissing(ctx, &models.Organization{
		ID:        uuid.NewString(),
		OwnerID:   userID,
		Name:      defaultOrganizationName,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create organization", err)
	}
	return o, nil
}

func (s *organizationService) Rename(ctx context.Context, userID string, in RenameOrganizationInput) (*models.Organization, error) {
	const op = "OrganizationService.Rename"

	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(op, in); err != nil {
		return nil, err
	}
	name := in.Name

	o, err := s.EnsureMine(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.orgs.UpdateName(ctx, o.ID, name); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to rename organization", err)
	}
	o.Name = name
	o.UpdatedAt = time.Now().UTC()
	return o, nil
}
