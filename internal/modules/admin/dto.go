package admin

import "servic/internal/domain"

type ProviderListResponse struct {
	Providers []domain.Provider `json:"providers"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}

// VerificationEvent is pushed to a provider's owner when an admin changes their badge.
type VerificationEvent struct {
	ProviderID int64 `json:"providerId"`
	IsVerified bool  `json:"isVerified"`
}
