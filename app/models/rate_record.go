package models

import "time"

// RateRecord is one denormalized row of the master rate table: a state's
// reimbursement rate for a service/modifier/date combination. Every dimension
// is optional free text populated by the ingestion pipeline; only the
// synthetic ID is guaranteed non-null.
type RateRecord struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	State              string     `gorm:"type:varchar(100);default:null;index" json:"state"`
	ServiceCategory    string     `gorm:"type:varchar(200);default:null;index" json:"service_category"`
	ServiceCode        string     `gorm:"type:varchar(50);default:null;index" json:"service_code"`
	ServiceDescription string     `gorm:"type:varchar(500);default:null" json:"service_description"`
	Program            string     `gorm:"type:varchar(200);default:null" json:"program"`
	LocationRegion     string     `gorm:"type:varchar(200);default:null" json:"location_region"`
	ProviderType       string     `gorm:"type:varchar(200);default:null" json:"provider_type"`
	Modifier1          string     `gorm:"type:varchar(20);default:null" json:"modifier_1"`
	Modifier1Details   string     `gorm:"type:varchar(500);default:null" json:"modifier_1_details"`
	Modifier2          string     `gorm:"type:varchar(20);default:null" json:"modifier_2"`
	Modifier2Details   string     `gorm:"type:varchar(500);default:null" json:"modifier_2_details"`
	Modifier3          string     `gorm:"type:varchar(20);default:null" json:"modifier_3"`
	Modifier3Details   string     `gorm:"type:varchar(500);default:null" json:"modifier_3_details"`
	Modifier4          string     `gorm:"type:varchar(20);default:null" json:"modifier_4"`
	Modifier4Details   string     `gorm:"type:varchar(500);default:null" json:"modifier_4_details"`
	Rate               string     `gorm:"type:varchar(50);default:null" json:"rate"`
	RateEffectiveDate  *time.Time `gorm:"type:date;default:null;index" json:"rate_effective_date,omitempty"`
	RatePerHour        string     `gorm:"type:varchar(50);default:null" json:"rate_per_hour"`
	DurationUnit       string     `gorm:"type:varchar(50);default:null" json:"duration_unit"`
}

// TableName keeps the ingestion pipeline's table name.
func (RateRecord) TableName() string {
	return "master_data"
}
