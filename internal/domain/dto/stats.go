package dto

// Stats are the platform-wide totals shown on the admin dashboard.
type Stats struct {
	TotalEvents  int64 `json:"total_events"`
	TotalClubs   int64 `json:"total_clubs"`
	TotalCities  int64 `json:"total_cities"`
	TotalMembers int64 `json:"total_members"`
}
