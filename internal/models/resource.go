package models

// Record is a row addressed by a business key that may appear in URLs.
type Record interface {
	NaturalKey() string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	TotalRecords int `json:"total_records"`
	TotalPages   int `json:"total_pages"`
	CurrentPage  int `json:"current_page"`
	Limit        int `json:"limit"`
}

// Page is the paginated envelope for list endpoints.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
