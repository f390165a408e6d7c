package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yoockh/folio/internal/cache"
	"github.com/yoockh/folio/internal/email"
	"github.com/yoockh/folio/internal/utils"
	"github.com/yoockh/folio/internal/validation"
)

type ContactInput struct {
	Site    string `json:"site" validate:"required,max=253"`
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

type ContactService interface {
	Send(ctx context.Context, clientIP string, in ContactInput) error
}

type contactService struct {
	sites    SiteService
	cache    cache.Cache
	sender   email.Sender
	limit    int
	validate *validation.Validator
}

// NewContactService allows limit messages per client and site each hour.
func NewContactService(sites SiteService, c cache.Cache, sender email.Sender, limit int, v *validation.Validator) ContactService {
	if sender == nil {
		sender = email.Disabled{}
	}
	if limit <= 0 {
		limit = 5
	}
	return &contactService{sites: sites, cache: c, sender: sender, limit: limit, validate: v}
}

func (s *contactService) Send(ctx context.Context, clientIP string, in ContactInput) error {
	const op = "ContactService.Send"

	in.Site = strings.ToLower(strings.TrimSpace(in.Site))
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if err := s.validate.Struct(op, in); err != nil {
		return err
	}

	if s.cache != nil {
		n, err := s.cache.Incr(ctx, cache.RateKey("contact", in.Site+":"+clientIP), time.Hour)
		if err != nil {
			return utils.E(utils.CodeUnavailable, op, "rate limiter unavailable", err)
		}
		if n > int64(s.limit) {
			return utils.E(utils.CodeLimitExceeded, op, "too many messages, try again later", nil)
		}
	}

	site, err := s.sites.Lookup(ctx, in.Site)
	if err != nil {
		return err
	}
	if site.Basics == nil || site.Basics.Email == "" {
		return utils.E(utils.CodeInvalidArgument, op, "this site does not accept messages", nil)
	}

	err = s.sender.SendContact(ctx, email.ContactMessage{
		To:          site.Basics.Email,
		SiteName:    site.Portfolio.Subdomain,
		SenderName:  in.Name,
		SenderEmail: in.Email,
		Subject:     in.Subject,
		Body:        in.Message,
	})
	if err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			return utils.E(utils.CodeUnavailable, op, "email is not configured", err)
		}
		return utils.E(utils.CodeUnavailable, op, "failed to send message", err)
	}
	return nil
}
