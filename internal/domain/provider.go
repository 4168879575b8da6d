package domain

import (
	"strings"
	"time"
)

// WorkingHours is a provider's weekly schedule. Start and End are "HH:MM",
// Days holds weekday names ("Monday"...). An empty Days set means every day.
type WorkingHours struct {
	Start string   `json:"start"`
	End   string   `json:"end"`
	Days  []string `json:"days"`
}

// WorksOn reports whether the schedule includes the weekday.
func (wh *WorkingHours) WorksOn(day time.Weekday) bool {
	if wh == nil || len(wh.Days) == 0 {
		return true
	}
	for _, d := range wh.Days {
		if strings.EqualFold(strings.TrimSpace(d), day.String()) {
			return true
		}
	}
	return false
}

type Provider struct {
	ID           int64         `json:"id"`
	UserID       *int64        `json:"userId,omitempty"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email,omitempty"`
	Bio          string        `json:"bio,omitempty"`
	Address      string        `json:"address,omitempty"`
	Category     Category      `json:"category"`
	Location     string        `json:"location"`
	HourlyRate   *float64      `json:"hourlyRate"`
	Experience   *int          `json:"experience"`
	Services     []string      `json:"services"`
	WorkingHours *WorkingHours `json:"workingHours"`
	IsVerified   bool          `json:"isVerified"`
	Rating       float64       `json:"rating"`
	ReviewCount  int           `json:"reviewCount"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// OwnedBy reports whether the profile is linked to userID.
func (p *Provider) OwnedBy(userID int64) bool {
	return p.UserID != nil && *p.UserID == userID
}

// ProviderFilter narrows directory listings. Zero values mean no filter.
type ProviderFilter struct {
	Category Category
	Location string
}

// ParseWeekday resolves a weekday name ignoring case.
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.TrimSpace(s)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, true
		}
	}
	return 0, false
}
