package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoundedInt(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		def     int
		min     int
		max     int
		want    int
		wantErr bool
	}{
		{"empty uses default", "", 20, 1, 100, 20, false},
		{"valid value", "42", 20, 1, 100, 42, false},
		{"lower bound inclusive", "1", 20, 1, 100, 1, false},
		{"upper bound inclusive", "100", 20, 1, 100, 100, false},
		{"below minimum", "0", 20, 1, 100, 0, true},
		{"above maximum", "101", 20, 1, 100, 0, true},
		{"not an integer", "ten", 20, 1, 100, 0, true},
		{"float rejected", "3.5", 20, 1, 100, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBoundedInt(tt.raw, tt.def, tt.min, tt.max)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriceRange(t *testing.T) {
	min, max, err := ParsePriceRange("10-99.5")
	require.NoError(t, err)
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 10.0, *min)
	assert.Equal(t, 99.5, *max)
}

func TestParsePriceRange_OpenEnds(t *testing.T) {
	min, max, err := ParsePriceRange("10-")
	require.NoError(t, err)
	require.NotNil(t, min)
	assert.Equal(t, 10.0, *min)
	assert.Nil(t, max)

	min, max, err = ParsePriceRange("-99.5")
	require.NoError(t, err)
	assert.Nil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 99.5, *max)

	min, max, err = ParsePriceRange("-")
	require.NoError(t, err)
	assert.Nil(t, min)
	assert.Nil(t, max)
}

func TestParsePriceRange_Invalid(t *testing.T) {
	cases := []string{"10", "abc-5", "5-xyz", "50-10"}
	for _, raw := range cases {
		_, _, err := ParsePriceRange(raw)
		assert.Error(t, err, "input %q", raw)
	}
}
