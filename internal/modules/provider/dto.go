package provider

import "servic/internal/domain"

type CreateProviderRequest struct {
	Name         string               `json:"name"`
	Phone        string               `json:"phone"`
	Email        string               `json:"email" validate:"omitempty,email"`
	Category     string               `json:"category"`
	Location     string               `json:"location" validate:"max=255"`
	Bio          string               `json:"bio" validate:"max=2000"`
	Address      string               `json:"address" validate:"max=500"`
	HourlyRate   *float64             `json:"hourlyRate" validate:"omitempty,gte=0"`
	Experience   *int                 `json:"experience" validate:"omitempty,gte=0,lte=80"`
	Services     []string             `json:"services" validate:"max=50,dive,max=100"`
	WorkingHours *domain.WorkingHours `json:"workingHours"`
}

// UpdateProviderRequest is a partial update; nil fields are left unchanged.
type UpdateProviderRequest struct {
	Name         *string              `json:"name" validate:"omitempty,max=255"`
	Phone        *string              `json:"phone"`
	Email        *string              `json:"email" validate:"omitempty,email"`
	Category     *string              `json:"category"`
	Location     *string              `json:"location" validate:"omitempty,max=255"`
	Bio          *string              `json:"bio" validate:"omitempty,max=2000"`
	Address      *string              `json:"address" validate:"omitempty,max=500"`
	HourlyRate   *float64             `json:"hourlyRate" validate:"omitempty,gte=0"`
	Experience   *int                 `json:"experience" validate:"omitempty,gte=0,lte=80"`
	Services     []string             `json:"services" validate:"omitempty,max=50,dive,max=100"`
	WorkingHours *domain.WorkingHours `json:"workingHours"`
}

func (r UpdateProviderRequest) empty() bool {
	return r.Name == nil && r.Phone == nil && r.Email == nil && r.Category == nil &&
		r.Location == nil && r.Bio == nil && r.Address == nil && r.HourlyRate == nil &&
		r.Experience == nil && r.Services == nil && r.WorkingHours == nil
}

// CreateResult is a new profile plus, for signed-in creators, the re-issued session token.
type CreateResult struct {
	Provider *domain.Provider `json:"provider"`
	Token    string           `json:"token,omitempty"`
}
