package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"servic/internal/domain"

	"gorm.io/gorm"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

type providerModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	UserID      *int64    `gorm:"column:user_id;uniqueIndex"`
	Name        string    `gorm:"column:name;size:255;not null"`
	Phone       string    `gorm:"column:phone;size:32;not null"`
	Email       *string   `gorm:"column:email;size:255"`
	Bio         string    `gorm:"column:bio;type:text;not null;default:''"`
	Address     *string   `gorm:"column:address"`
	Category    string    `gorm:"column:category;size:32;not null;index"`
	Location    string    `gorm:"column:location;size:255;not null;index"`
	HourlyRate  *float64  `gorm:"column:hourly_rate"`
	Experience  *int      `gorm:"column:experience"`
	Services    []string  `gorm:"column:services;serializer:json"`
	WorkStart   *string   `gorm:"column:work_start;size:5"`
	WorkEnd     *string   `gorm:"column:work_end;size:5"`
	WorkDays    []string  `gorm:"column:work_days;serializer:json"`
	IsVerified  bool      `gorm:"column:is_verified;not null;default:false"`
	Rating      float64   `gorm:"column:rating;not null;default:0"`
	ReviewCount int       `gorm:"column:review_count;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (providerModel) TableName() string { return "providers" }

func toDomainProvider(m providerModel) *domain.Provider {
	p := &domain.Provider{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Phone:       m.Phone,
		Bio:         m.Bio,
		Category:    domain.Category(m.Category),
		Location:    m.Location,
		HourlyRate:  m.HourlyRate,
		Experience:  m.Experience,
		Services:    m.Services,
		IsVerified:  m.IsVerified,
		Rating:      m.Rating,
		ReviewCount: m.ReviewCount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Email != nil {
		p.Email = *m.Email
	}
	if m.Address != nil {
		p.Address = *m.Address
	}
	if p.Services == nil {
		p.Services = []string{}
	}
	if m.WorkStart != nil && m.WorkEnd != nil {
		days := m.WorkDays
		if days == nil {
			days = []string{}
		}
		p.WorkingHours = &domain.WorkingHours{Start: *m.WorkStart, End: *m.WorkEnd, Days: days}
	}
	return p
}

func toProviderModel(p *domain.Provider) providerModel {
	m := providerModel{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        strings.TrimSpace(p.Name),
		Phone:       strings.TrimSpace(p.Phone),
		Email:       optionalString(normalizeEmail(p.Email)),
		Bio:         strings.TrimSpace(p.Bio),
		Address:     optionalString(strings.TrimSpace(p.Address)),
		Category:    string(p.Category),
		Location:    strings.TrimSpace(p.Location),
		HourlyRate:  p.HourlyRate,
		Experience:  p.Experience,
		Services:    p.Services,
		IsVerified:  p.IsVerified,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if wh := p.WorkingHours; wh != nil {
		start, end := wh.Start, wh.End
		m.WorkStart = &start
		m.WorkEnd = &end
		m.WorkDays = wh.Days
	}
	return m
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *ProviderRepository) Create(ctx context.Context, p *domain.Provider) error {
	m := toProviderModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create provider: %w", err)
	}
	*p = *toDomainProvider(m)
	return nil
}

// CreateAndPromote stores p linked to userID and promotes a plain user to the
// provider role in the same transaction. Admins keep their role.
// A user who already owns a profile yields ErrDuplicate.
func (r *ProviderRepository) CreateAndPromote(ctx context.Context, p *domain.Provider, userID int64) error {
	p.UserID = &userID
	m := toProviderModel(p)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		res := tx.Model(&userModel{}).
			Where("id = ? AND role = ?", userID, string(domain.RoleUser)).
			Updates(map[string]any{"role": string(domain.RoleProvider), "updated_at": time.Now()})
		return res.Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create provider and promote user %d: %w", userID, err)
	}

	*p = *toDomainProvider(m)
	return nil
}

func (r *ProviderRepository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	var m providerModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainProvider(m), nil
}

func (r *ProviderRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Provider, error) {
	var m providerModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainProvider(m), nil
}

func (r *ProviderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&providerModel{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *ProviderRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&providerModel{}).Count(&cnt).Error
	return cnt, err
}

// List returns providers matching f, newest first.
func (r *ProviderRepository) List(ctx context.Context, f domain.ProviderFilter) ([]domain.Provider, error) {
	q := r.db.WithContext(ctx).Model(&providerModel{})
	if f.Category != "" {
		q = q.Where("category = ?", string(f.Category))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		q = q.Where("LOWER(location) = ?", strings.ToLower(loc))
	}

	var rows []providerModel
	if err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}

	out := make([]domain.Provider, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProvider(m))
	}
	return out, nil
}

// Update saves every editable column of p.
func (r *ProviderRepository) Update(ctx context.Context, p *domain.Provider) error {
	m := toProviderModel(p)
	m.UpdatedAt = time.Now()
	tx := r.db.WithContext(ctx).Model(&providerModel{}).
		Where("id = ?", p.ID).
		Select("name", "phone", "email", "bio", "address", "category", "location",
			"hourly_rate", "experience", "services", "work_start", "work_end", "work_days", "updated_at").
		Updates(&m)
	if tx.Error != nil {
		return fmt.Errorf("update provider %d: %w", p.ID, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	p.UpdatedAt = m.UpdatedAt
	return nil
}

// Summaries loads the public summary of each listed provider keyed by id.
func (r *ProviderRepository) Summaries(ctx context.Context, ids []int64) (map[int64]domain.ProviderSummary, error) {
	out := make(map[int64]domain.ProviderSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []providerModel
	if err := r.db.WithContext(ctx).
		Select("id", "name", "category", "location", "phone").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load provider summaries: %w", err)
	}
	for _, m := range rows {
		out[m.ID] = domain.ProviderSummary{
			ID:       m.ID,
			Name:     m.Name,
			Category: domain.Category(m.Category),
			Location: m.Location,
			Phone:    m.Phone,
		}
	}
	return out, nil
}

// ListUnverified pages through providers awaiting verification, oldest first.
func (r *ProviderRepository) ListUnverified(ctx context.Context, offset, limit int) ([]domain.Provider, int64, error) {
	unverified := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&providerModel{}).Where("is_verified = ?", false)
	}

	var total int64
	if err := unverified().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count unverified providers: %w", err)
	}

	var rows []providerModel
	if err := unverified().Order("created_at ASC").Order("id ASC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list unverified providers: %w", err)
	}
	out := make([]domain.Provider, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProvider(m))
	}
	return out, total, nil
}

func (r *ProviderRepository) SetVerified(ctx context.Context, id int64, verified bool) error {
	tx := r.db.WithContext(ctx).Model(&providerModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_verified": verified, "updated_at": time.Now()})
	if tx.Error != nil {
		return fmt.Errorf("set provider %d verified: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
