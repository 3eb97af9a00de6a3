package response_models

type BusinessSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Category    string   `json:"category,omitempty"`
	City        string   `json:"city,omitempty"`
	Address     string   `json:"address,omitempty"`
	RatingAvg   float64  `json:"rating_avg"`
	RatingCount int      `json:"rating_count"`
	IsVerified  bool     `json:"is_verified"`
	Tags        []string `json:"tags,omitempty"`

	DistanceKm *float64 `json:"distance_km,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
}

type BusinessDetail struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	City        string   `json:"city,omitempty"`
	Address     string   `json:"address"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	RatingAvg   float64  `json:"rating_avg"`
	RatingCount int      `json:"rating_count"`
	IsVerified  bool     `json:"is_verified"`
	Tags        []string `json:"tags,omitempty"`

	Offerings []OfferingResponse `json:"offerings,omitempty"`
}
