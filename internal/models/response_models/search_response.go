package response_models

type SearchResponse struct {
	Query      string             `json:"query"`
	Businesses []BusinessSummary  `json:"businesses,omitempty"`
	Offerings  []OfferingResponse `json:"offerings,omitempty"`
}
