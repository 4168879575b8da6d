package lead

type RecordLeadRequest struct {
	ProviderID int64  `json:"providerId"`
	Type       string `json:"type"`
}
