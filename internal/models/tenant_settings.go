package models

import "time"

// Configurações do tenant: expediente, contato e pagamento.
// O código PIX é tratado como string opaca (apenas exibição).
type TenantSettings struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"uniqueIndex" json:"tenant_id"`
	Tenant   Tenant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	WorkStart   string `gorm:"size:5;default:'09:00'" json:"work_start"` // HH:MM
	WorkEnd     string `gorm:"size:5;default:'20:00'" json:"work_end"`   // HH:MM
	SlotStepMin int    `gorm:"default:30" json:"slot_step_min"`
	BufferMin   int    `gorm:"default:0" json:"buffer_min"`
	Timezone    string `gorm:"size:50;default:'America/Sao_Paulo'" json:"timezone"`

	LocationAddress string `gorm:"size:255" json:"location_address"`
	LocationCity    string `gorm:"size:100" json:"location_city"`
	LocationState   string `gorm:"size:50" json:"location_state"`

	SocialInstagram string `gorm:"size:255" json:"social_instagram"`
	SocialFacebook  string `gorm:"size:255" json:"social_facebook"`
	WhatsappNumber  string `gorm:"size:20" json:"whatsapp_number"`

	PixCopyPaste string `gorm:"size:512" json:"pix_copy_paste"`
	PixQrURL     string `gorm:"size:255" json:"pix_qr_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
