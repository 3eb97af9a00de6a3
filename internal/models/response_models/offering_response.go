package response_models

type OfferingImageResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Source    string `json:"source,omitempty"`
	License   string `json:"license,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	Width     *int   `json:"width,omitempty"`
	Height    *int   `json:"height,omitempty"`
}

type OfferingResponse struct {
	ID          string   `json:"id"`
	BusinessID  string   `json:"business_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	PriceCents  *int64   `json:"price_cents,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	IsActive    bool     `json:"is_active"`
	PrimaryURL  string   `json:"primary_image_url,omitempty"`
	Similarity  *float64 `json:"similarity,omitempty"`

	Images []OfferingImageResponse `json:"images,omitempty"`
}
