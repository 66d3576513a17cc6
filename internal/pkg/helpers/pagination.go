package helpers

import (
	"time"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1 // Pages are 1-based
)

// NormalizePage clamps page/limit query values to sane bounds
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// CalculateOffsetLimit converts a 1-based page into an SQL offset/limit pair
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	page, limit = NormalizePage(page, size)
	offset = uint64((page - 1) * limit)
	return offset, limit
}

// ParseDuration parses a duration string falling back to a default
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
