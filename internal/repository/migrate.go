package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// activeSlotIndex keeps at most one pending or confirmed booking per provider, day and slot.
const activeSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_slot
ON bookings (provider_id, date, time_slot)
WHERE status IN ('pending', 'confirmed')`

// Models lists every persisted model in creation order.
func Models() []any {
	return []any{
		&userModel{},
		&providerModel{},
		&bookingModel{},
		&leadModel{},
	}
}

// Migrate brings the schema up to date, including the indexes gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return fmt.Errorf("create idx_bookings_active_slot: %w", err)
	}
	return nil
}
