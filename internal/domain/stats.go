package domain

// PlatformStats is the admin overview of the marketplace.
type PlatformStats struct {
	Users             int64                   `json:"users"`
	Providers         int64                   `json:"providers"`
	VerifiedProviders int64                   `json:"verifiedProviders"`
	Bookings          map[BookingStatus]int64 `json:"bookings"`
	Leads             int64                   `json:"leads"`
}
