package stowage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolume(t *testing.T) {
	assert.Equal(t, 60, volume(Dimensions{W: 3, D: 4, H: 5}))
}

func TestContains(t *testing.T) {
	container := Box{Pos: Coordinate{0, 0, 0}, Dims: Dimensions{10, 8, 5}}

	assert.True(t, contains(container, Box{Pos: Coordinate{0, 0, 0}, Dims: Dimensions{10, 8, 5}}))
	assert.True(t, contains(container, Box{Pos: Coordinate{1, 1, 1}, Dims: Dimensions{2, 2, 2}}))
	assert.False(t, contains(container, Box{Pos: Coordinate{9, 0, 0}, Dims: Dimensions{2, 1, 1}}))
	assert.False(t, contains(container, Box{Pos: Coordinate{0, 0, 0}, Dims: Dimensions{11, 8, 5}}))
}

func TestOverlapsHalfOpen(t *testing.T) {
	a := Box{Pos: Coordinate{0, 0, 0}, Dims: Dimensions{2, 2, 2}}
	touching := Box{Pos: Coordinate{2, 0, 0}, Dims: Dimensions{2, 2, 2}}
	overlapping := Box{Pos: Coordinate{1, 0, 0}, Dims: Dimensions{2, 2, 2}}

	assert.False(t, overlaps(a, touching), "half-open boxes sharing only a boundary plane must not overlap")
	assert.True(t, overlaps(a, overlapping))
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 6, manhattan(Coordinate{0, 0, 0}, Coordinate{1, 2, 3}))
}

func TestValidateDimensionsRejectsNonPositive(t *testing.T) {
	err := validateDimensions(Dimensions{W: 0, D: 1, H: 1})
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestValidateCoordinateRejectsNegative(t *testing.T) {
	err := validateCoordinate(Coordinate{X: -1})
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}
