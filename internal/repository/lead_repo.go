package repository

import (
	"context"
	"fmt"
	"time"

	"servic/internal/domain"

	"gorm.io/gorm"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

type leadModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	ProviderID int64     `gorm:"column:provider_id;not null;index"`
	Type       string    `gorm:"column:type;size:16;not null"`
	Timestamp  time.Time `gorm:"column:timestamp;not null"`
}

func (leadModel) TableName() string { return "leads" }

func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	m := leadModel{
		ProviderID: l.ProviderID,
		Type:       string(l.Type),
		Timestamp:  l.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("create lead: %w", err)
	}
	l.ID = m.ID
	return nil
}

// CountByType aggregates the leads of one provider.
func (r *LeadRepository) CountByType(ctx context.Context, providerID int64) (domain.LeadStats, error) {
	var rows []struct {
		Type string
		Cnt  int64
	}
	err := r.db.WithContext(ctx).Model(&leadModel{}).
		Select("type, COUNT(*) AS cnt").
		Where("provider_id = ?", providerID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return domain.LeadStats{}, fmt.Errorf("count leads for provider %d: %w", providerID, err)
	}

	stats := domain.LeadStats{ProviderID: providerID}
	for _, row := range rows {
		switch domain.LeadType(row.Type) {
		case domain.LeadCall:
			stats.Call = row.Cnt
		case domain.LeadWhatsApp:
			stats.WhatsApp = row.Cnt
		}
		stats.Total += row.Cnt
	}
	return stats, nil
}
