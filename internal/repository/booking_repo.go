package repository

import (
	"context"
	"fmt"
	"time"

	"servic/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// bookingModel stores the calendar day as "YYYY-MM-DD" so equality and ordering
// behave the same on PostgreSQL and SQLite.
type bookingModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	ProviderID  int64     `gorm:"column:provider_id;not null;index"`
	UserID      int64     `gorm:"column:user_id;not null;index"`
	ClientName  string    `gorm:"column:client_name;size:255;not null"`
	ClientEmail string    `gorm:"column:client_email;size:255;not null"`
	ClientPhone string    `gorm:"column:client_phone;size:32;not null"`
	Date        string    `gorm:"column:date;size:10;not null"`
	TimeSlot    string    `gorm:"column:time_slot;size:5;not null"`
	Notes       string    `gorm:"column:notes;type:text;not null;default:''"`
	Status      string    `gorm:"column:status;size:20;not null;default:pending;index"`
	IsNew       bool      `gorm:"column:is_new;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	day, _ := time.Parse(domain.DateLayout, m.Date)
	return &domain.Booking{
		ID:          m.ID,
		ProviderID:  m.ProviderID,
		UserID:      m.UserID,
		ClientName:  m.ClientName,
		ClientEmail: m.ClientEmail,
		ClientPhone: m.ClientPhone,
		Date:        day,
		TimeSlot:    m.TimeSlot,
		Notes:       m.Notes,
		Status:      domain.BookingStatus(m.Status),
		IsNew:       m.IsNew,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:          b.ID,
		ProviderID:  b.ProviderID,
		UserID:      b.UserID,
		ClientName:  b.ClientName,
		ClientEmail: b.ClientEmail,
		ClientPhone: b.ClientPhone,
		Date:        domain.FormatDay(b.Date),
		TimeSlot:    b.TimeSlot,
		Notes:       b.Notes,
		Status:      string(b.Status),
		IsNew:       b.IsNew,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toDomainBookings(rows []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out
}

// Create inserts b in one statement. When an active booking already holds the
// same provider, day and slot the unique index rejects it and ErrDuplicate is returned.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	// Explicit columns so false/empty values are written instead of column defaults.
	tx := r.db.WithContext(ctx).
		Select("provider_id", "user_id", "client_name", "client_email", "client_phone",
			"date", "time_slot", "notes", "status", "is_new", "created_at", "updated_at").
		Create(&m)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return ErrDuplicate
		}
		return fmt.Errorf("create booking: %w", tx.Error)
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainBooking(m), nil
}

// ListByUser returns the client's bookings ordered by day then slot.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").Order("time_slot ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings for user %d: %w", userID, err)
	}
	return toDomainBookings(rows), nil
}

// ListByProvider returns every booking of a provider ordered by day then slot.
func (r *BookingRepository) ListByProvider(ctx context.Context, providerID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("date ASC").Order("time_slot ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list bookings for provider %d: %w", providerID, err)
	}
	return toDomainBookings(rows), nil
}

// ListActive returns the pending and confirmed bookings of a provider,
// restricted to one day when day is non-nil.
func (r *BookingRepository) ListActive(ctx context.Context, providerID int64, day *time.Time) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Where("status IN ?", activeStatuses())
	if day != nil {
		q = q.Where("date = ?", domain.FormatDay(*day))
	}

	var rows []bookingModel
	if err := q.Order("date ASC").Order("time_slot ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list active bookings for provider %d: %w", providerID, err)
	}
	return toDomainBookings(rows), nil
}

// ListConfirmedAt returns confirmed bookings starting at the given day and slot.
func (r *BookingRepository) ListConfirmedAt(ctx context.Context, day time.Time, slot string) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND date = ? AND time_slot = ?", string(domain.BookingConfirmed), domain.FormatDay(day), slot).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list confirmed bookings at %s %s: %w", domain.FormatDay(day), slot, err)
	}
	return toDomainBookings(rows), nil
}

// ApplyPatch writes the patch only if the booking still has status expected.
// ErrStale is returned when another writer got there first.
func (r *BookingRepository) ApplyPatch(ctx context.Context, id int64, expected domain.BookingStatus, patch domain.BookingPatch) (*domain.Booking, error) {
	fields := map[string]any{"updated_at": time.Now()}
	if patch.Status != nil {
		fields["status"] = string(*patch.Status)
	}
	if patch.IsNew != nil {
		fields["is_new"] = *patch.IsNew
	}

	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(fields)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update booking %d: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrStale
	}
	return r.GetByID(ctx, id)
}

func activeStatuses() []string {
	statuses := domain.ActiveStatuses()
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
