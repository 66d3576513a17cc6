package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateName(t *testing.T) {
	assert.Equal(t, "Texas", StateName("TX"))
	assert.Equal(t, "Texas", StateName("tx"))
	assert.Equal(t, "New York", StateName(" ny "))
	assert.Equal(t, "", StateName("XX"))
	assert.Equal(t, "", StateName(""))
}

func TestLocationMatchesState(t *testing.T) {
	tests := []struct {
		location string
		code     string
		want     bool
	}{
		{"Austin, TX", "TX", true},
		{"Austin, tx", "TX", true},
		{"Dallas, Texas", "TX", true},
		{"dallas texas", "tx", true},
		{"Reno, NV", "TX", false},
		{"New York, NY", "NY", true},
		{"Brooklyn, New York", "NY", true},
		{"", "TX", false},
		{"Austin, TX", "", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LocationMatchesState(tt.location, tt.code),
			"location %q state %q", tt.location, tt.code)
	}
}
