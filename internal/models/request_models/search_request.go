package request_models

type SemanticSearchRequest struct {
	Query string `json:"query" binding:"required,min=2"`
	// "businesses" | "offerings" | "all"; empty means "all".
	Scope     string  `json:"scope"`
	Limit     int     `json:"limit"`
	Threshold float64 `json:"threshold"`
}
