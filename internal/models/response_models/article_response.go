package response_models

type ArticleResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt,omitempty"`
	URL         string `json:"url"`
	PublishedAt int64  `json:"published_at"`
}

type GeneratedDescription struct {
	OfferingID string `json:"offering_id"`
	Draft      string `json:"draft"`
	Provider   string `json:"provider"`
}
