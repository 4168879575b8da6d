package availability

import "servic/internal/domain"

type Slot struct {
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
}

type DayAvailability struct {
	ProviderID   int64                `json:"providerId"`
	Date         string               `json:"date"`
	WorkingHours *domain.WorkingHours `json:"workingHours"`
	WorkingDay   bool                 `json:"workingDay"`
	Slots        []Slot               `json:"slots"`
}
