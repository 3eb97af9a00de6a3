package response_models

type ReviewResponse struct {
	ID          string   `json:"id"`
	BusinessID  string   `json:"business_id"`
	OfferingID  string   `json:"offering_id,omitempty"`
	AuthorName  string   `json:"author_name"`
	AuthorLevel int      `json:"author_level"`
	Rating      int      `json:"rating"`
	ReviewText  string   `json:"review_text,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
	Views       int      `json:"views"`
	CreatedAt   int64    `json:"created_at"`
}

type ModerationQueueItem struct {
	ID           string   `json:"id"`
	BusinessID   string   `json:"business_id"`
	BusinessName string   `json:"business_name"`
	AuthorName   string   `json:"author_name"`
	AuthorEmail  string   `json:"author_email"`
	Rating       int      `json:"rating"`
	ReviewText   string   `json:"review_text,omitempty"`
	ImageURLs    []string `json:"image_urls,omitempty"`
	CreatedAt    int64    `json:"created_at"`
}

type ModerationQueue struct {
	Items    []ModerationQueueItem `json:"items"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

type ModerationResult struct {
	ReviewID    string `json:"review_id"`
	Status      string `json:"status"`
	CreditAward int    `json:"credit_award,omitempty"`
	NewLevel    int    `json:"new_level,omitempty"`
}
