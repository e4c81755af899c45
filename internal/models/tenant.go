package models

import "time"

type Tenant struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Slug   string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Status string `gorm:"size:20;default:'ativo'" json:"status"`

	LogoURL     string `gorm:"size:255" json:"logo_url"`
	HeaderBgURL string `gorm:"size:255" json:"header_bg_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
