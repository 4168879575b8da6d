package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"servic/internal/domain"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// PlatformStats counts users, providers, bookings per status and leads.
func (r *StatsRepository) PlatformStats(ctx context.Context) (domain.PlatformStats, error) {
	db := r.db.WithContext(ctx)
	stats := domain.PlatformStats{Bookings: make(map[domain.BookingStatus]int64)}

	if err := db.Model(&userModel{}).Count(&stats.Users).Error; err != nil {
		return stats, fmt.Errorf("count users: %w", err)
	}
	if err := db.Model(&providerModel{}).Count(&stats.Providers).Error; err != nil {
		return stats, fmt.Errorf("count providers: %w", err)
	}
	if err := db.Model(&providerModel{}).Where("is_verified = ?", true).Count(&stats.VerifiedProviders).Error; err != nil {
		return stats, fmt.Errorf("count verified providers: %w", err)
	}
	if err := db.Model(&leadModel{}).Count(&stats.Leads).Error; err != nil {
		return stats, fmt.Errorf("count leads: %w", err)
	}

	var rows []struct {
		Status string
		Cnt    int64
	}
	if err := db.Model(&bookingModel{}).Select("status, COUNT(*) AS cnt").Group("status").Scan(&rows).Error; err != nil {
		return stats, fmt.Errorf("count bookings: %w", err)
	}
	for _, s := range []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingCompleted, domain.BookingCancelled} {
		stats.Bookings[s] = 0
	}
	for _, row := range rows {
		stats.Bookings[domain.BookingStatus(row.Status)] = row.Cnt
	}
	return stats, nil
}
