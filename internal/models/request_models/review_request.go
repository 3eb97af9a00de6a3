package request_models

import "github.com/google/uuid"

type SubmitReviewRequest struct {
	BusinessID uuid.UUID  `json:"business_id" binding:"required,uuid4"`
	OfferingID *uuid.UUID `json:"offering_id"`
	Rating     int        `json:"rating" binding:"required,min=1,max=5"`
	ReviewText string     `json:"review_text"`
	ImageURLs  []string   `json:"image_urls"`
}

type ModerateReviewRequest struct {
	ReviewID uuid.UUID `json:"review_id" binding:"required,uuid4"`
	Approve  bool      `json:"approve"`
	Note     string    `json:"note"`
}
