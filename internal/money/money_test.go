package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"12.34", 1234},
		{"12,34", 1234},
		{"12", 1200},
		{"0.01", 1},
		{".50", 50},
		{"12.344", 1234}, // third decimal rounds down
		{"12.345", 1235}, // half rounds up
		{" 120.50 ", 12050},
	}
	for _, c := range cases {
		got, err := ParseCents(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseCentsRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "+5", "0", "0.00", "1.2.3", "12a.50"} {
		_, err := ParseCents(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "12.34", FormatCents(1234))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "-3.00", FormatCents(-300))
	assert.Equal(t, "120.50", FormatCents(12050))
}
