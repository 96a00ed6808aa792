package stowage

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllOrientationsAreTheSixPermutations(t *testing.T) {
	orientations := allOrientations()
	require.Len(t, orientations, 6)

	seen := make(map[[3]int]bool)
	for _, o := range orientations {
		require.NoError(t, validateOrientation(o))
		seen[[3]int{o.AW, o.AD, o.AH}] = true
	}
	assert.Len(t, seen, 6, "all six permutations must be distinct")
}

func TestValidateOrientationRejectsNonPermutation(t *testing.T) {
	err := validateOrientation(Orientation{AW: 0, AD: 0, AH: 1})
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestApplyAllOrientationsYieldsAllDimensionPermutations(t *testing.T) {
	orig := Dimensions{W: 2, D: 3, H: 5}
	var got [][3]int
	for _, o := range allOrientations() {
		eff := apply(o, orig)
		got = append(got, [3]int{eff.W, eff.D, eff.H})
	}

	want := [][3]int{
		{2, 3, 5}, {2, 5, 3}, {3, 2, 5}, {3, 5, 2}, {5, 2, 3}, {5, 3, 2},
	}
	lessTriple := func(s [][3]int) func(i, j int) bool {
		return func(i, j int) bool {
			a, b := s[i], s[j]
			if a[0] != b[0] {
				return a[0] < b[0]
			}
			if a[1] != b[1] {
				return a[1] < b[1]
			}
			return a[2] < b[2]
		}
	}
	sort.Slice(got, lessTriple(got))
	sort.Slice(want, lessTriple(want))
	assert.Equal(t, want, got)
}

func TestApplyIdentityIsNoOp(t *testing.T) {
	orig := Dimensions{W: 3, D: 2, H: 2}
	assert.Equal(t, orig, apply(Orientation{0, 1, 2}, orig))
}
