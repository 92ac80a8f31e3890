package models

// Policy is the admission policy read from the settings store for a single check
// Has* flags distinguish a setting that was never configured from an empty list
type Policy struct {
	SpecificAllowedPostcodes []string
	AllowedAreaPrefixes      []string

	HasSpecificAllowedPostcodes bool
	HasAllowedAreaPrefixes      bool
}

// Complete reports whether both allow-lists are configured (empty lists count)
func (p Policy) Complete() bool {
	return p.HasSpecificAllowedPostcodes && p.HasAllowedAreaPrefixes
}

// LookupStatus is the outcome class of an area lookup
type LookupStatus int

const (
	LookupFound LookupStatus = iota
	LookupNotFound
	LookupServiceError
)

// String returns the label used in logs and metrics
func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not_found"
	default:
		return "error"
	}
}

// LookupResult is the outcome of resolving a postcode's area through the lookup service
// It is produced per check and never stored
type LookupResult struct {
	Status     LookupStatus
	AreaCode   string // LSOA string, e.g. "Lsoa1 034A" (Found only)
	StatusCode int    // HTTP status, 0 for transport failures
	Message    string // error message reported by the service or transport
	URL        string // queried URL
}

// Found builds a successful lookup result
func Found(url, areaCode string) LookupResult {
	return LookupResult{Status: LookupFound, AreaCode: areaCode, StatusCode: 200, URL: url}
}

// NotFound builds a not-found lookup result
func NotFound(url string, statusCode int, message string) LookupResult {
	return LookupResult{Status: LookupNotFound, StatusCode: statusCode, Message: message, URL: url}
}

// ServiceError builds a failed lookup result
func ServiceError(url string, statusCode int, message string) LookupResult {
	return LookupResult{Status: LookupServiceError, StatusCode: statusCode, Message: message, URL: url}
}

// CheckRequest is the body of POST /v1/postcodes/check
type CheckRequest struct {
	Postcode string `json:"postcode" validate:"max=256" example:"AB0 1CD"`
}

// CheckResponse is the admission decision returned to the caller
type CheckResponse struct {
	Postcode string `json:"postcode" example:"AB0 1CD"`
	Allowed  bool   `json:"allowed" example:"true"`
	Message  string `json:"message" example:"Postcode AB0 1CD is allowed."`
}

// ValidateResponse is the format check used for client-side hinting
type ValidateResponse struct {
	Postcode string `json:"postcode" example:"AB0 1CD"`
	Valid    bool   `json:"valid" example:"true"`
	Pattern  string `json:"pattern"`
	Title    string `json:"title" example:"Invalid postcode format"`
}

// SettingsResponse lists both allow-lists; null means the setting was never configured
type SettingsResponse struct {
	AllowedPostcodesLSOA     []string `json:"allowed_postcodes_lsoa"`
	SpecificAllowedPostcodes []string `json:"specific_allowed_postcodes"`
}

// SettingUpdateRequest replaces the values of one setting
// An empty list is a valid value; a missing list is rejected
type SettingUpdateRequest struct {
	Values []string `json:"values" validate:"required,dive,required,max=64"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error string `json:"error"` // Error message
}
