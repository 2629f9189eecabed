package util

const DefaultPageSize = 10

func Calculate(limit, offset int) (int, int) {
	if limit <= 0 || limit > 500 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
