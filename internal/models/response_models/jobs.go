package response_models

import "time"

// UnitError is one failed unit inside a batch job. Jobs record the failure
// and keep going.
type UnitError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// RefreshSummary is the result of one nightly (or manually triggered)
// offerings refresh run.
type RefreshSummary struct {
	Success             bool        `json:"success"`
	Message             string      `json:"message"`
	StartedAt           time.Time   `json:"started_at"`
	DurationMillis      int64       `json:"duration_ms"`
	BusinessesRefreshed int         `json:"businesses_refreshed"`
	OfferingsRefreshed  int         `json:"offerings_refreshed"`
	OfferingsFailed     int         `json:"offerings_failed"`
	ImagesChecked       int         `json:"images_checked"`
	ImagesFlagged       int         `json:"images_flagged"`
	RateLimitRowsPruned int64       `json:"rate_limit_rows_pruned"`
	Errors              []UnitError `json:"errors"`
}

// ImportSummary is the result of a GMB discovery run.
type ImportSummary struct {
	Success           bool        `json:"success"`
	AccountsScanned   int         `json:"accounts_scanned"`
	LocationsFound    int         `json:"locations_found"`
	BusinessesCreated int         `json:"businesses_created"`
	BusinessesUpdated int         `json:"businesses_updated"`
	Errors            []UnitError `json:"errors"`
}

// SyncSummary is the result of a WordPress content sync.
type SyncSummary struct {
	Success bool        `json:"success"`
	Fetched int         `json:"fetched"`
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Errors  []UnitError `json:"errors"`
}
