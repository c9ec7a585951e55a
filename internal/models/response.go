package models

type SearchMetadata struct {
	TotalResults int   `json:"total_results"`
	FilteredOut  int   `json:"filtered_out"`
	SearchTimeMs int64 `json:"search_time_ms"`
	CacheHit     bool  `json:"cache_hit"`
}

type SearchResponse struct {
	SearchCriteria SearchRequest  `json:"search_criteria"`
	Metadata       SearchMetadata `json:"metadata"`
	FilterBounds   FilterBounds   `json:"filter_bounds"`
	Results        []FlightResult `json:"results"`

	// Error hints at why the result list is empty ("missing_parameters");
	// the storefront shows its modify-search affordance on it.
	Error string `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// FieldErrorResponse carries a per-field error map for form validation
// failures, keyed by field name.
type FieldErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}
