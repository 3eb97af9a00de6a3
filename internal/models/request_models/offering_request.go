package request_models

import "github.com/google/uuid"

type CreateOfferingRequest struct {
	BusinessID  uuid.UUID `json:"business_id" binding:"required,uuid4"`
	Name        string    `json:"name" binding:"required,min=2,max=120"`
	Description string    `json:"description"`
	PriceCents  *int64    `json:"price_cents"`
	Currency    string    `json:"currency"`
}

type UpdateOfferingRequest struct {
	ID          uuid.UUID `json:"id" binding:"required,uuid4"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  *int64    `json:"price_cents"`
	Currency    string    `json:"currency"`
	IsActive    *bool     `json:"is_active"`
}

type AddOfferingImageRequest struct {
	OfferingID uuid.UUID `json:"offering_id" binding:"required,uuid4"`
	URL        string    `json:"url" binding:"required,url"`
	Source     string    `json:"source"`
	License    string    `json:"license"`
	Width      *int      `json:"width"`
	Height     *int      `json:"height"`
}

type SetPrimaryImageRequest struct {
	ImageID uuid.UUID `json:"image_id" binding:"required,uuid4"`
}
