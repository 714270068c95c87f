package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type color string

const (
	red   color = "red"
	green color = "green"
)

func newColors() *Enum[color] {
	return NewEnum("color", map[string]color{"red": red, "Green": green, "verdant": green}, red)
}

func TestEnumNormalize(t *testing.T) {
	e := newColors()
	tests := []struct {
		in   string
		want color
	}{
		{"red", red},
		{"  GREEN ", green},
		{"verdant", green},
		{"blue", red},
		{"", red},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, e.Normalize(tt.in))
		})
	}
}

func TestEnumParseAndValid(t *testing.T) {
	e := newColors()

	v, err := e.Parse("Red")
	require.NoError(t, err)
	require.Equal(t, red, v)
	require.True(t, e.Valid(" red"))

	_, err = e.Parse("blue")
	require.EqualError(t, err, `invalid color "blue", valid options: green, red, verdant`)
	require.False(t, e.Valid("blue"))
	require.Equal(t, []string{"green", "red", "verdant"}, e.Keys())
}

func TestEnumCheck(t *testing.T) {
	e := newColors()

	v, msg := e.Check("paint", "green")
	require.Equal(t, green, v)
	require.Empty(t, msg)

	v, msg = e.Check("paint", "GREEN")
	require.Equal(t, green, v)
	require.Equal(t, "normalized paint from 'GREEN' to 'green'", msg)

	v, msg = e.Check("paint", "blue")
	require.Equal(t, red, v)
	require.Contains(t, msg, "using red")
}
