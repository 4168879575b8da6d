// Package seed fills an empty database with sample providers and demo accounts.
package seed

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"servic/internal/domain"
	"servic/internal/repository"
)

const DemoPassword = "password123"

const (
	DemoClientEmail   = "demo_client@servic.com"
	DemoProviderEmail = "demo_provider@servic.com"
)

type ProviderStore interface {
	Create(ctx context.Context, p *domain.Provider) error
	Count(ctx context.Context) (int64, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error)
}

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

func sampleProviders() []domain.Provider {
	return []domain.Provider{
		{
			Name:       "Ahmad Khan",
			Phone:      "+923001234567",
			Bio:        "Electrician with over ten years of experience in home wiring, AC repair and solar panel installation.",
			Category:   domain.CategoryElectrician,
			Location:   "Karachi",
			IsVerified: true,
		},
		{
			Name:       "Bilal Ahmed",
			Phone:      "+923012345678",
			Bio:        "Plumber for pipe fitting, bathroom renovation and water heater repair.",
			Category:   domain.CategoryPlumber,
			Location:   "Lahore",
			IsVerified: true,
		},
		{
			Name:     "Fatima Zahra",
			Phone:    "+923023456789",
			Bio:      "Home tutor for Math, Physics and Chemistry at O and A Level.",
			Category: domain.CategoryTutor,
			Location: "Islamabad",
		},
		{
			Name:       "Hassan Ali",
			Phone:      "+923034567890",
			Bio:        "Carpenter building custom furniture and kitchen cabinets.",
			Category:   domain.CategoryCarpenter,
			Location:   "Karachi",
			IsVerified: true,
		},
		{
			Name:     "Usman Ghani",
			Phone:    "+923045678901",
			Bio:      "Auto mechanic for Japanese and European cars: engine repair, AC service and maintenance.",
			Category: domain.CategoryMechanic,
			Location: "Lahore",
		},
	}
}

// Providers inserts the sample directory unless providers already exist.
// It returns how many rows were inserted.
func Providers(ctx context.Context, providers ProviderStore) (int, error) {
	n, err := providers.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	list := sampleProviders()
	for i := range list {
		if err := providers.Create(ctx, &list[i]); err != nil {
			return i, fmt.Errorf("seed provider %q: %w", list[i].Name, err)
		}
	}
	return len(list), nil
}

type DemoAccounts struct {
	Client   *domain.User
	Provider *domain.User
	Profile  *domain.Provider
}

// Demo makes sure the demo client and demo provider exist. Running it twice is harmless.
func Demo(ctx context.Context, users UserStore, providers ProviderStore) (*DemoAccounts, error) {
	client, err := ensureUser(ctx, users, DemoClientEmail, "Demo Client", domain.RoleUser)
	if err != nil {
		return nil, err
	}
	owner, err := ensureUser(ctx, users, DemoProviderEmail, "Demo Provider", domain.RoleProvider)
	if err != nil {
		return nil, err
	}

	profile, err := providers.GetByUserID(ctx, owner.ID)
	if err == nil {
		return &DemoAccounts{Client: client, Provider: owner, Profile: profile}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	rate, years := 500.0, 5
	profile = &domain.Provider{
		UserID:     &owner.ID,
		Name:       "Demo Provider",
		Phone:      "0300-1234567",
		Email:      DemoProviderEmail,
		Bio:        "Demo provider account for trying out the platform.",
		Category:   domain.CategoryElectrician,
		Location:   "Karachi",
		HourlyRate: &rate,
		Experience: &years,
		IsVerified: true,
		WorkingHours: &domain.WorkingHours{
			Start: "09:00",
			End:   "18:00",
			Days:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		},
	}
	if err := providers.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("seed demo provider profile: %w", err)
	}
	return &DemoAccounts{Client: client, Provider: owner, Profile: profile}, nil
}

func ensureUser(ctx context.Context, users UserStore, email, name string, role domain.UserRole) (*domain.User, error) {
	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	u = &domain.User{Email: email, PasswordHash: string(hash), Name: name, Role: role}
	if err := users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("seed user %s: %w", email, err)
	}
	return u, nil
}

type RoleUpdater interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateRole(ctx context.Context, id int64, role domain.UserRole) error
}

// PromoteAdmin gives an existing account the admin role.
func PromoteAdmin(ctx context.Context, users RoleUpdater, email string) (*domain.User, error) {
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("no account for %s", email)
		}
		return nil, err
	}
	if u.Role == domain.RoleAdmin {
		return u, nil
	}
	if err := users.UpdateRole(ctx, u.ID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	u.Role = domain.RoleAdmin
	return u, nil
}
