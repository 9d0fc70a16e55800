package paginate

// Paginate returns the slice of items visible on the given 1-based page.
// Out-of-range pages yield an empty slice rather than an error, and page
// or pageSize values below 1 are clamped to 1.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize

	if start >= len(items) {
		return []T{}
	}

	end := start + pageSize

	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// TotalPages returns the number of pages needed to show count items. An empty
// collection still renders a single page so pagination controls never show
// zero pages.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}

	if count <= 0 {
		return 1
	}

	return (count + pageSize - 1) / pageSize
}
