package models

import "time"

const (
	TemplateClassic   = "classic"
	TemplateMinimal   = "minimal"
	TemplateDeveloper = "developer"
)

var Templates = []string{TemplateClassic, TemplateMinimal, TemplateDeveloper}

type DomainStatus string

// Status strings reported to the dashboard badges.
const (
	DomainValid      DomainStatus = "Valid Configuration"
	DomainInvalid    DomainStatus = "Invalid Configuration"
	DomainPending    DomainStatus = "Pending Verification"
	DomainNotFound   DomainStatus = "Domain Not Found"
	DomainStatusNone DomainStatus = ""
)

type Portfolio struct {
	ID             string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrganizationID string `gorm:"column:organization_id;type:uuid;index" json:"organization_id"`
	UserID         string `gorm:"column:user_id;type:uuid;index" json:"user_id"`

	Name         string       `gorm:"column:name;type:text" json:"name"`
	Subdomain    string       `gorm:"column:subdomain;type:text;uniqueIndex" json:"subdomain"`
	CustomDomain *string      `gorm:"column:custom_domain;type:text;uniqueIndex" json:"custom_domain"`
	DomainStatus DomainStatus `gorm:"column:domain_status;type:text" json:"domain_status,omitempty"`

	Template    string `gorm:"column:template;type:text" json:"template"`
	Title       string `gorm:"column:title;type:text" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Published   bool   `gorm:"column:published" json:"published"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Portfolio) TableName() string { return "portfolios" }

// Hosts returns every site key the portfolio answers to.
func (p *Portfolio) Hosts() []string {
	out := []string{p.Subdomain}
	if p.CustomDomain != nil && *p.CustomDomain != "" {
		out = append(out, *p.CustomDomain)
	}
	return out
}

type Basics struct {
	PortfolioID string `gorm:"column:portfolio_id;type:uuid;primaryKey" json:"portfolio_id"`

	Name      string `gorm:"column:name;type:text" json:"name" validate:"max=100"`
	Headline  string `gorm:"column:headline;type:text" json:"headline" validate:"max=160"`
	Email     string `gorm:"column:email;type:text" json:"email" validate:"omitempty,email,max=254"`
	Phone     string `gorm:"column:phone;type:text" json:"phone" validate:"max=40"`
	Website   string `gorm:"column:website;type:text" json:"website" validate:"omitempty,url,max=2048"`
	Location  string `gorm:"column:location;type:text" json:"location" validate:"max=120"`
	Summary   string `gorm:"column:summary;type:text" json:"summary" validate:"max=4000"`
	AvatarURL string `gorm:"column:avatar_url;type:text" json:"avatar_url" validate:"omitempty,url,max=2048"`
	Visible   bool   `gorm:"column:visible" json:"visible"`

	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Basics) TableName() string { return "basics" }

// PortfolioFull is the editor's view: the portfolio with every section.
type PortfolioFull struct {
	Portfolio      *Portfolio      `json:"portfolio"`
	Basics         *Basics         `json:"basics"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []Skill         `json:"skills"`
	Projects       []Project       `json:"projects"`
	Hackathons     []Hackathon     `json:"hackathons"`
	Certifications []Certification `json:"certifications"`
	Profiles       []Profile       `json:"profiles"`
}
