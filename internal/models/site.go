package models

import "time"

// Site is the public, render-ready view of a published portfolio.
// Hidden items are already filtered out.
type Site struct {
	Portfolio      PublicPortfolio `json:"portfolio"`
	Basics         *Basics         `json:"basics,omitempty"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         []Skill         `json:"skills"`
	Projects       []Project       `json:"projects"`
	Hackathons     []Hackathon     `json:"hackathons"`
	Certifications []Certification `json:"certifications"`
	Profiles       []Profile       `json:"profiles"`
	Posts          []Blog          `json:"posts"`
}

// PublicPortfolio is the part of a portfolio visitors may see.
type PublicPortfolio struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Subdomain    string    `json:"subdomain"`
	CustomDomain *string   `json:"custom_domain,omitempty"`
	Template     string    `json:"template"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p Portfolio) Public() PublicPortfolio {
	return PublicPortfolio{
		ID:           p.ID,
		Name:         p.Name,
		Subdomain:    p.Subdomain,
		CustomDomain: p.CustomDomain,
		Template:     p.Template,
		Title:        p.Title,
		Description:  p.Description,
		UpdatedAt:    p.UpdatedAt,
	}
}
