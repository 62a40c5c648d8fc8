package service

// Page is one page of a listing
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

const defaultPageLimit = 10

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	return page, limit
}

func newPage[T any](data []T, total int64, page, limit int) *Page[T] {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return &Page[T]{Data: data, Total: total, Page: page, Limit: limit, TotalPages: pages}
}
