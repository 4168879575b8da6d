package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"servic/internal/domain"
	"servic/internal/pkg/validator"
	"servic/internal/repository"
)

type Service struct {
	providers ProviderRepository
}

func NewService(providers ProviderRepository) *Service {
	return &Service{providers: providers}
}

// CreateProvider registers a profile. With an actor the profile is linked to
// them and a plain user is promoted to provider atomically.
func (s *Service) CreateProvider(ctx context.Context, actor *domain.Actor, req CreateProviderRequest) (*domain.Provider, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" ||
		strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.Location) == "" {
		return nil, ErrMissingFields
	}
	if !validator.ValidPhone(req.Phone) {
		return nil, ErrInvalidPhone
	}
	category, ok := domain.ParseCategory(req.Category)
	if !ok {
		return nil, ErrInvalidCategory
	}
	if details := validator.Validate(req); details != nil {
		return nil, ErrInvalidDetails.WithDetails(details)
	}
	wh, err := normalizeWorkingHours(req.WorkingHours)
	if err != nil {
		return nil, err
	}

	p := &domain.Provider{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Category:     category,
		Location:     req.Location,
		Bio:          req.Bio,
		Address:      req.Address,
		HourlyRate:   req.HourlyRate,
		Experience:   req.Experience,
		Services:     cleanServices(req.Services),
		WorkingHours: wh,
	}

	if actor == nil {
		if err := s.providers.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("create provider: %w", err)
		}
		return p, nil
	}

	if err := s.providers.CreateAndPromote(ctx, p, actor.UserID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProviderExists
		}
		return nil, fmt.Errorf("create provider for user %d: %w", actor.UserID, err)
	}
	return p, nil
}

// ListProviders filters by category and location; "" and "all" disable a filter.
func (s *Service) ListProviders(ctx context.Context, category, location string) ([]domain.Provider, error) {
	var f domain.ProviderFilter

	if c := strings.TrimSpace(category); c != "" && !strings.EqualFold(c, "all") {
		parsed, ok := domain.ParseCategory(c)
		if !ok {
			return nil, ErrInvalidCategory
		}
		f.Category = parsed
	}
	if l := strings.TrimSpace(location); l != "" && !strings.EqualFold(l, "all") {
		f.Location = l
	}

	out, err := s.providers.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	return out, nil
}

func (s *Service) GetProvider(ctx context.Context, id int64) (*domain.Provider, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	p, err := s.providers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("get provider %d: %w", id, err)
	}
	return p, nil
}

func (s *Service) GetMyProvider(ctx context.Context, actor domain.Actor) (*domain.Provider, error) {
	p, err := s.providers.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("get provider of user %d: %w", actor.UserID, err)
	}
	return p, nil
}

// UpdateProvider applies a partial edit. Only the owning user or an admin may edit.
func (s *Service) UpdateProvider(ctx context.Context, actor domain.Actor, id int64, req UpdateProviderRequest) (*domain.Provider, error) {
	if req.empty() {
		return nil, ErrNoChanges
	}

	p, err := s.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(actor.UserID) && !actor.IsAdmin() {
		return nil, ErrNotOwner
	}

	if details := validator.Validate(req); details != nil {
		return nil, ErrInvalidDetails.WithDetails(details)
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		if !validator.ValidPhone(*req.Phone) {
			return nil, ErrInvalidPhone
		}
		p.Phone = *req.Phone
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Category != nil {
		category, ok := domain.ParseCategory(*req.Category)
		if !ok {
			return nil, ErrInvalidCategory
		}
		p.Category = category
	}
	if req.Location != nil {
		p.Location = strings.TrimSpace(*req.Location)
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.HourlyRate != nil {
		p.HourlyRate = req.HourlyRate
	}
	if req.Experience != nil {
		p.Experience = req.Experience
	}
	if req.Services != nil {
		p.Services = cleanServices(req.Services)
	}
	if req.WorkingHours != nil {
		wh, err := normalizeWorkingHours(req.WorkingHours)
		if err != nil {
			return nil, err
		}
		p.WorkingHours = wh
	}

	if p.Name == "" || p.Location == "" {
		return nil, ErrMissingFields
	}

	if err := s.providers.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("update provider %d: %w", id, err)
	}
	return p, nil
}

func normalizeWorkingHours(wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	if wh == nil {
		return nil, nil
	}
	start, end := strings.TrimSpace(wh.Start), strings.TrimSpace(wh.End)
	if !validator.Clock(start) || !validator.Clock(end) || start >= end {
		return nil, ErrInvalidWorkingHours
	}

	days := make([]string, 0, len(wh.Days))
	seen := make(map[string]bool, len(wh.Days))
	for _, d := range wh.Days {
		wd, ok := domain.ParseWeekday(d)
		if !ok {
			return nil, ErrInvalidWorkingHours
		}
		if name := wd.String(); !seen[name] {
			seen[name] = true
			days = append(days, name)
		}
	}
	return &domain.WorkingHours{Start: start, End: end, Days: days}, nil
}

func cleanServices(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
