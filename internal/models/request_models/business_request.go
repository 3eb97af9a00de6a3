package request_models

import "github.com/google/uuid"

type CreateBusinessRequest struct {
	Name        string     `json:"name" binding:"required,min=2,max=120"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`
	CityID      *uuid.UUID `json:"city_id"`
	Address     string     `json:"address"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Phone       string     `json:"phone"`
	Website     string     `json:"website"`
	Tags        []string   `json:"tags"`
}

type UpdateBusinessRequest struct {
	ID          uuid.UUID  `json:"id" binding:"required,uuid4"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`
	CityID      *uuid.UUID `json:"city_id"`
	Address     string     `json:"address"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Phone       string     `json:"phone"`
	Website     string     `json:"website"`
	Tags        []string   `json:"tags"`
}

type SetVerifiedRequest struct {
	ID       uuid.UUID `json:"id" binding:"required,uuid4"`
	Verified bool      `json:"verified"`
}

type SetVisibleRequest struct {
	ID      uuid.UUID `json:"id" binding:"required,uuid4"`
	Visible bool      `json:"visible"`
}

// NearbyQuery binds from query string on GET /businesses/nearby.
type NearbyQuery struct {
	Latitude  float64 `form:"lat" binding:"required"`
	Longitude float64 `form:"lng" binding:"required"`
	RadiusKm  float64 `form:"radius_km"`
	Limit     int     `form:"limit"`
}
