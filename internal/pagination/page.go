// Package pagination slices an in-memory result list into numbered pages.
package pagination

const (
	DefaultSize = 10
	MaxSize     = 100
)

type Page[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int
	Pages int
}

// Paginate returns the 1-indexed page of items. A page past the end yields
// no items but still reports the full total and page count. Page and size
// below 1 are raised to 1.
func Paginate[T any](items []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}

	total := len(items)
	pages := (total + size - 1) / size

	result := Page[T]{
		Items: []T{},
		Page:  page,
		Size:  size,
		Total: total,
		Pages: pages,
	}

	if page > pages {
		return result
	}

	start := (page - 1) * size
	end := min(start+size, total)
	result.Items = items[start:end]

	return result
}

// Normalize applies configured defaults and limits to requested paging
// values. Zero or negative values fall back to page 1 and defaultSize.
func Normalize(page, size, defaultSize, maxSize int) (int, int) {
	if defaultSize < 1 {
		defaultSize = DefaultSize
	}
	if maxSize < 1 {
		maxSize = MaxSize
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultSize
	}
	if size > maxSize {
		size = maxSize
	}
	return page, size
}
