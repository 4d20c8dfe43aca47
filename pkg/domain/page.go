package domain

// Page is the envelope every list endpoint returns: a bounded slice of items
// plus the total count and paging position. Item order is server-defined and
// must not be resorted by the client.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// HasNext reports whether more pages exist after this one.
func (p Page[T]) HasNext() bool {
	if p.Limit <= 0 {
		return false
	}
	return p.Page*p.Limit < p.Total
}

// HasPrev reports whether a page exists before this one.
func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}
