package models

import "time"

// Content tables backing the dashboard's secondary views. Rows are loaded by
// scrapers/importers out of band; the admin endpoints only patch or delete
// them by id or natural key.

// ProviderAlert is a state Medicaid provider bulletin. Link is the natural
// key used by the admin delete path.
type ProviderAlert struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	State            string     `gorm:"type:varchar(100);default:null;index" json:"state"`
	Subject          string     `gorm:"type:varchar(500);default:null" json:"subject"`
	AnnouncementDate *time.Time `gorm:"type:date;default:null" json:"announcement_date,omitempty"`
	ServiceLines     string     `gorm:"type:varchar(500);default:null" json:"service_lines"`
	Link             string     `gorm:"type:varchar(500);default:null;index" json:"link"`
	Summary          string     `gorm:"type:text" json:"summary"`
}

func (ProviderAlert) TableName() string { return "provider_alerts" }

// Bill is a tracked piece of state legislation. URL is the natural key used
// by the admin delete path.
type Bill struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	State        string `gorm:"type:varchar(100);default:null;index" json:"state"`
	BillNumber   string `gorm:"type:varchar(50);default:null" json:"bill_number"`
	Name         string `gorm:"type:varchar(500);default:null" json:"name"`
	LastAction   string `gorm:"type:text" json:"last_action"`
	ActionDate   string `gorm:"type:varchar(50);default:null" json:"action_date"`
	Sponsors     string `gorm:"type:text" json:"sponsors"`
	BillProgress string `gorm:"type:varchar(100);default:null" json:"bill_progress"`
	URL          string `gorm:"type:varchar(500);default:null;index" json:"url"`
	AISummary    string `gorm:"type:text" json:"ai_summary"`
	ServiceLines string `gorm:"type:varchar(500);default:null" json:"service_lines"`
}

func (Bill) TableName() string { return "bills" }

// Comment is an analyst note attached to the legislative tracker.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BillURL   string    `gorm:"type:varchar(500);not null;index" json:"bill_url"`
	UserEmail string    `gorm:"type:varchar(200);not null" json:"user_email"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string { return "comments_table" }

// ServiceCategory is one entry of the curated category list shown in the
// filter dropdowns.
type ServiceCategory struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Categories string `gorm:"type:varchar(200);not null" json:"categories"`
}

func (ServiceCategory) TableName() string { return "service_category_list" }

// CodeDefinition maps a billing/service code to its human description.
type CodeDefinition struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ServiceCode string `gorm:"type:varchar(50);not null;index" json:"service_code"`
	Definition  string `gorm:"type:text" json:"definition"`
}

func (CodeDefinition) TableName() string { return "code_definitions" }
