package response_models

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CityResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
