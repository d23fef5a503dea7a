package picklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 1990, parseInt("1,990"))
	assert.Equal(t, 7, parseInt("7"))
	assert.Equal(t, 1234567, parseInt("1,234,567"))
}

func TestParseIntOrNilPlaceholder(t *testing.T) {
	assert.Nil(t, parseIntOrNil("____"))
	assert.Nil(t, parseIntOrNil("_"))
	assert.Nil(t, parseIntOrNil(""))
	assert.Nil(t, parseIntOrNil("  "))
}

func TestParseIntOrNilRounding(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"12", 12},
		{"1,990", 1990},
		{"12.4", 12},
		{"12.5", 13},
		{"12.6", 13},
		{"13.5", 14},
	}
	for _, c := range cases {
		got := parseIntOrNil(c.in)
		require.NotNil(t, got, c.in)
		assert.Equal(t, c.want, *got, c.in)
	}
}

func TestParseDecOrNil(t *testing.T) {
	require.NotNil(t, parseDecOrNil("1,990.00"))
	assert.Equal(t, 1990.0, *parseDecOrNil("1,990.00"))
	assert.Equal(t, 15.875, *parseDecOrNil(`15.875"`))
	assert.Equal(t, 48.0, *parseDecOrNil(" 48 "))
	assert.Nil(t, parseDecOrNil(""))
	assert.Nil(t, parseDecOrNil("N/A"))
}
