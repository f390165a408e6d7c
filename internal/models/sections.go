package models

import (
	"time"

	"gorm.io/datatypes"
)

// SectionItem holds the columns every section record shares.
type SectionItem struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PortfolioID string    `gorm:"column:portfolio_id;type:uuid;index" json:"portfolio_id"`
	Position    int       `gorm:"column:position" json:"position"`
	Visible     bool      `gorm:"column:visible" json:"visible"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (s *SectionItem) Item() *SectionItem { return s }

// Section is implemented by pointers to every section record.
type Section interface {
	TableName() string
	Item() *SectionItem
}

type Experience struct {
	SectionItem
	Company    string                      `gorm:"column:company;type:text" json:"company" validate:"required,max=120"`
	Role       string                      `gorm:"column:role;type:text" json:"role" validate:"required,max=120"`
	Location   string                      `gorm:"column:location;type:text" json:"location" validate:"max=120"`
	URL        string                      `gorm:"column:url;type:text" json:"url" validate:"omitempty,url,max=2048"`
	StartDate  string                      `gorm:"column:start_date;type:text" json:"start_date" validate:"omitempty,max=32"`
	EndDate    string                      `gorm:"column:end_date;type:text" json:"end_date" validate:"omitempty,max=32"`
	Current    bool                        `gorm:"column:current" json:"current"`
	Summary    string                      `gorm:"column:summary;type:text" json:"summary" validate:"max=4000"`
	Highlights datatypes.JSONSlice[string] `gorm:"column:highlights;type:jsonb" json:"highlights" validate:"max=20,dive,max=300"`
}

func (Experience) TableName() string { return "experiences" }

type Education struct {
	SectionItem
	Institution string `gorm:"column:institution;type:text" json:"institution" validate:"required,max=160"`
	Degree      string `gorm:"column:degree;type:text" json:"degree" validate:"max=120"`
	Field       string `gorm:"column:field;type:text" json:"field" validate:"max=120"`
	StartDate   string `gorm:"column:start_date;type:text" json:"start_date" validate:"omitempty,max=32"`
	EndDate     string `gorm:"column:end_date;type:text" json:"end_date" validate:"omitempty,max=32"`
	Score       string `gorm:"column:score;type:text" json:"score" validate:"max=40"`
	Summary     string `gorm:"column:summary;type:text" json:"summary" validate:"max=2000"`
}

func (Education) TableName() string { return "educations" }

type Skill struct {
	SectionItem
	Name     string                      `gorm:"column:name;type:text" json:"name" validate:"required,max=80"`
	Level    string                      `gorm:"column:level;type:text" json:"level" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	Keywords datatypes.JSONSlice[string] `gorm:"column:keywords;type:jsonb" json:"keywords" validate:"max=30,dive,max=60"`
}

func (Skill) TableName() string { return "skills" }

type Project struct {
	SectionItem
	Name         string                      `gorm:"column:name;type:text" json:"name" validate:"required,max=120"`
	Description  string                      `gorm:"column:description;type:text" json:"description" validate:"max=4000"`
	URL          string                      `gorm:"column:url;type:text" json:"url" validate:"omitempty,url,max=2048"`
	RepoURL      string                      `gorm:"column:repo_url;type:text" json:"repo_url" validate:"omitempty,url,max=2048"`
	ImageURL     string                      `gorm:"column:image_url;type:text" json:"image_url" validate:"omitempty,url,max=2048"`
	Technologies datatypes.JSONSlice[string] `gorm:"column:technologies;type:jsonb" json:"technologies" validate:"max=30,dive,max=60"`
	StartDate    string                      `gorm:"column:start_date;type:text" json:"start_date" validate:"omitempty,max=32"`
	EndDate      string                      `gorm:"column:end_date;type:text" json:"end_date" validate:"omitempty,max=32"`
}

func (Project) TableName() string { return "projects" }

type Hackathon struct {
	SectionItem
	Name        string `gorm:"column:name;type:text" json:"name" validate:"required,max=120"`
	Role        string `gorm:"column:role;type:text" json:"role" validate:"max=120"`
	Location    string `gorm:"column:location;type:text" json:"location" validate:"max=120"`
	Date        string `gorm:"column:date;type:text" json:"date" validate:"omitempty,max=32"`
	URL         string `gorm:"column:url;type:text" json:"url" validate:"omitempty,url,max=2048"`
	LogoURL     string `gorm:"column:logo_url;type:text" json:"logo_url" validate:"omitempty,url,max=2048"`
	Description string `gorm:"column:description;type:text" json:"description" validate:"max=4000"`
	Prize       string `gorm:"column:prize;type:text" json:"prize" validate:"max=120"`
}

func (Hackathon) TableName() string { return "hackathons" }

type Certification struct {
	SectionItem
	Name         string `gorm:"column:name;type:text" json:"name" validate:"required,max=160"`
	Issuer       string `gorm:"column:issuer;type:text" json:"issuer" validate:"required,max=120"`
	IssueDate    string `gorm:"column:issue_date;type:text" json:"issue_date" validate:"omitempty,max=32"`
	ExpiryDate   string `gorm:"column:expiry_date;type:text" json:"expiry_date" validate:"omitempty,max=32"`
	CredentialID string `gorm:"column:credential_id;type:text" json:"credential_id" validate:"max=120"`
	URL          string `gorm:"column:url;type:text" json:"url" validate:"omitempty,url,max=2048"`
}

func (Certification) TableName() string { return "certifications" }

type Profile struct {
	SectionItem
	Network  string `gorm:"column:network;type:text" json:"network" validate:"required,max=60"`
	Username string `gorm:"column:username;type:text" json:"username" validate:"max=120"`
	URL      string `gorm:"column:url;type:text" json:"url" validate:"required,url,max=2048"`
}

func (Profile) TableName() string { return "profiles" }
