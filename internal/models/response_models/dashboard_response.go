package response_models

import "time"

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// "day" | "week" | "month"
	Interval string `json:"interval"`
	// Optional: timezone used for bucketing (defaults to UTC if empty)
	Timezone string `json:"timezone,omitempty"`
}

type KPIBlock struct {
	TotalBusinesses    int64 `json:"total_businesses"`
	VerifiedBusinesses int64 `json:"verified_businesses"`
	TotalOfferings     int64 `json:"total_offerings"`
	TotalAccounts      int64 `json:"total_accounts"`
	NewAccounts        int64 `json:"new_accounts"`
	ApprovedReviews    int64 `json:"approved_reviews"`
	PendingReviews     int64 `json:"pending_reviews"`
	RejectedReviews    int64 `json:"rejected_reviews"`
	TotalFavorites     int64 `json:"total_favorites"`
}

type SeriesPoint struct {
	Bucket time.Time `json:"bucket"`
	Value  int64     `json:"value"`
}

type CountSeries struct {
	Points []SeriesPoint `json:"points"`
}

type TopBusiness struct {
	BusinessID  string  `json:"business_id"`
	Name        string  `json:"name"`
	ReviewCount int64   `json:"review_count"`
	RatingAvg   float64 `json:"rating_avg"`
}

type RecentModeration struct {
	ReviewID       string `json:"review_id"`
	Status         string `json:"status"`
	Rating         int    `json:"rating"`
	ModeratedAt    *int64 `json:"moderated_at"`
	BusinessName   string `json:"business_name"`
	ModeratorEmail string `json:"moderator_email,omitempty"`
}

type DashboardReport struct {
	Range             TimeRange          `json:"range"`
	KPIs              KPIBlock           `json:"kpis"`
	NewReviews        CountSeries        `json:"new_reviews"`
	NewAccounts       CountSeries        `json:"new_accounts"`
	TopBusinesses     []TopBusiness      `json:"top_businesses"`
	RecentModerations []RecentModeration `json:"recent_moderations"`
}
