package dns

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultVercelAPI = "https://api.vercel.com"

// Vercel talks to the Vercel project-domains and domain-config endpoints.
type Vercel struct {
	BaseURL   string
	Token     string
	ProjectID string
	TeamID    string
	HTTP      *http.Client
}

func NewVercel(token, projectID, teamID string) *Vercel {
	return &Vercel{
		BaseURL:   defaultVercelAPI,
		Token:     token,
		ProjectID: projectID,
		TeamID:    teamID,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

type vercelError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// APIError is a non-2xx answer that did not map onto a sentinel.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vercel: %d %s: %s", e.Status, e.Code, e.Message)
}

func (v *Vercel) AddDomain(ctx context.Context, domain string) (*ProjectDomain, error) {
	var out ProjectDomain
	err := v.do(ctx, http.MethodPost, fmt.Sprintf("/v10/projects/%s/domains", v.ProjectID), map[string]string{"name": domain}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (v *Vercel) RemoveDomain(ctx context.Context, domain string) error {
	return v.do(ctx, http.MethodDelete, fmt.Sprintf("/v9/projects/%s/domains/%s", v.ProjectID, url.PathEscape(domain)), nil, nil)
}

func (v *Vercel) GetDomain(ctx context.Context, domain string) (*ProjectDomain, error) {
	var out ProjectDomain
	err := v.do(ctx, http.MethodGet, fmt.Sprintf("/v9/projects/%s/domains/%s", v.ProjectID, url.PathEscape(domain)), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (v *Vercel) VerifyDomain(ctx context.Context, domain string) (*ProjectDomain, error) {
	var out ProjectDomain
	err := v.do(ctx, http.MethodPost, fmt.Sprintf("/v9/projects/%s/domains/%s/verify", v.ProjectID, url.PathEscape(domain)), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (v *Vercel) GetConfig(ctx context.Context, domain string) (*DomainConfig, error) {
	var out DomainConfig
	err := v.do(ctx, http.MethodGet, fmt.Sprintf("/v6/domains/%s/config", url.PathEscape(domain)), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (v *Vercel) do(ctx context.Context, method, path string, body any, dst any) error {
	u := strings.TrimRight(v.BaseURL, "/") + path
	if v.TeamID != "" {
		u += "?teamId=" + url.QueryEscape(v.TeamID)
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+v.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := v.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode >= 300 {
		var ve vercelError
		_ = json.Unmarshal(raw, &ve)
		switch {
		case resp.StatusCode == http.StatusNotFound || ve.Error.Code == "not_found":
			return ErrDomainNotFound
		case resp.StatusCode == http.StatusConflict || ve.Error.Code == "domain_already_in_use":
			return ErrDomainTaken
		}
		return &APIError{Status: resp.StatusCode, Code: ve.Error.Code, Message: ve.Error.Message}
	}

	if dst == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
