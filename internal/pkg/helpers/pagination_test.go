package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, DefaultPageSize, limit)

	page, limit = NormalizePage(-3, -1)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)

	page, limit = NormalizePage(4, 50)
	assert.Equal(t, 4, page)
	assert.Equal(t, 50, limit)

	_, limit = NormalizePage(1, 500)
	assert.Equal(t, MaxPageSize, limit)
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 20)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 20, limit)

	offset, limit = CalculateOffsetLimit(3, 10)
	assert.Equal(t, uint64(20), offset)
	assert.Equal(t, 10, limit)

	offset, limit = CalculateOffsetLimit(0, 0)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, time.Hour, ParseDuration("1h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
}
