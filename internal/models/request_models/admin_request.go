package request_models

import "encoding/json"

type UpdateSettingRequest struct {
	Key         string          `json:"key" binding:"required"`
	Value       json.RawMessage `json:"value" binding:"required"`
	Description string          `json:"description"`
}

type ImportLocationsRequest struct {
	// Optional: restrict the import to one GMB account resource,
	// e.g. "accounts/1234567890". Empty imports every readable account.
	AccountResource string `json:"account_resource"`
}

type GenerateDescriptionRequest struct {
	// Extra context for the generator, e.g. "family owned since 1982".
	Notes string `json:"notes"`
}

type SubscribeRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
}
