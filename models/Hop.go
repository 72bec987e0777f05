package models

import (
	"gorm.io/gorm"
)

// Hop is the persisted row of a hop ingredient. Values are validated by the
// hop package before they reach this type.
type Hop struct {
	gorm.Model
	Name             string  `gorm:"uniqueIndex;not null" json:"name"`
	Version          int     `gorm:"not null;default:1" json:"version"`
	AlphaPct         float64 `gorm:"not null;default:0" json:"alpha_pct"`
	AmountKg         float64 `gorm:"not null;default:0" json:"amount_kg"`
	Use              string  `gorm:"type:varchar(32);not null;default:Boil" json:"use"`
	TimeMin          float64 `gorm:"not null;default:0" json:"time_min"`
	Notes            string  `gorm:"type:text" json:"notes"`
	Type             string  `gorm:"type:varchar(32);not null;default:Both" json:"type"`
	Form             string  `gorm:"type:varchar(32)" json:"form"`
	BetaPct          float64 `json:"beta_pct"`
	HSIPct           float64 `gorm:"column:hsi_pct" json:"hsi_pct"`
	Origin           string  `json:"origin"`
	Substitutes      string  `gorm:"type:text" json:"substitutes"`
	HumulenePct      float64 `json:"humulene_pct"`
	CaryophyllenePct float64 `json:"caryophyllene_pct"`
	CohumulonePct    float64 `json:"cohumulone_pct"`
	MyrcenePct       float64 `json:"myrcene_pct"`
}
