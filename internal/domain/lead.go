package domain

import "time"

type LeadType string

const (
	LeadCall     LeadType = "call"
	LeadWhatsApp LeadType = "whatsapp"
)

func (t LeadType) Valid() bool {
	return t == LeadCall || t == LeadWhatsApp
}

type Lead struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"providerId"`
	Type       LeadType  `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
}

// LeadStats counts leads by type for one provider.
type LeadStats struct {
	ProviderID int64 `json:"providerId"`
	Call       int64 `json:"call"`
	WhatsApp   int64 `json:"whatsapp"`
	Total      int64 `json:"total"`
}
