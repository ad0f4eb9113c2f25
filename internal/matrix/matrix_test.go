package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input Matrix
		ok    bool
	}{
		{"empty", Matrix{}, false},
		{"nil", nil, false},
		{"zero width", Matrix{{}, {}}, false},
		{"ragged", Matrix{{1, 2}, {3}}, false},
		{"single", Matrix{{1}}, true},
		{"rectangular", Matrix{{1, 2}, {3, 4}, {5, 6}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestBounds(t *testing.T) {
	mins, maxs := Matrix{{1, 8}, {-2, 3}, {4, 5}}.Bounds()
	assert.Equal(t, []float64{-2, 3}, mins)
	assert.Equal(t, []float64{4, 8}, maxs)
}

func TestTranspose(t *testing.T) {
	got, err := Matrix{{1, 2, 3}, {4, 5, 6}}.Transpose()
	require.NoError(t, err)
	assert.Equal(t, Matrix{{1, 4}, {2, 5}, {3, 6}}, got)

	_, err = Matrix{}.Transpose()
	assert.ErrorIs(t, err, ErrInvalidInput)
}
