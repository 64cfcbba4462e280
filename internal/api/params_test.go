package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBudget(t *testing.T) {
	const fallback = 10_000_000.0

	tests := []struct {
		input string
		want  float64
	}{
		{"10m", 10_000_000},
		{"500k", 500_000},
		{"2500000", 2_500_000},
		{"1,500,000", 1_500_000},
		{" 3M ", 3_000_000},
		{"", fallback},
		{"abc", fallback},
		{"-5m", fallback},
		{"0", fallback},
		{"1.5m", fallback}, // decimals are not shorthand
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBudget(tt.input, fallback))
		})
	}
}

func TestQueryParamHelpers(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=50&minVolume=1000&aggro=0.3&auto=true&ids=2,+4151,junk,0", nil)

	assert.Equal(t, 50, intParam(r, "limit", 25))
	assert.Equal(t, 25, intParam(r, "missing", 25))
	assert.Equal(t, int64(1000), int64Param(r, "minVolume", 500))
	assert.Equal(t, 0.3, floatParam(r, "aggro", 0.2))
	assert.Equal(t, 0.2, floatParam(r, "missing", 0.2))
	assert.True(t, boolParam(r, "auto"))
	assert.False(t, boolParam(r, "missing"))
	assert.Equal(t, []int{2, 4151}, idListParam(r, "ids"))
	assert.Nil(t, idListParam(r, "missing"))
}
