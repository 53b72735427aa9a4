package util

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const DefaultPageSize = 17

var ErrBadPage = errors.New("page must be a positive integer")

// ParsePage reads a 1-based page number. An empty value means the first page.
func ParsePage(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, ErrBadPage
	}
	return v, nil
}

func Calculate(page, size int) (offset int, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	// Pages past the addressable range saturate instead of wrapping negative,
	// so the store sees an offset beyond every row.
	if page-1 > math.MaxInt/size {
		return math.MaxInt, size
	}
	offset = (page - 1) * size
	limit = size
	return offset, limit
}
