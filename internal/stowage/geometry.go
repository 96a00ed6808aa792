package stowage

import "fmt"

// Coordinate is a non-negative integer triple indexing unit cells.
// Axes are labelled width (x), depth (y), height (z).
type Coordinate struct {
	X, Y, Z int
}

// Dimensions is a positive integer triple (width, depth, height).
type Dimensions struct {
	W, D, H int
}

// Box is the half-open axis-aligned region [x, x+w) x [y, y+d) x [z, z+h).
type Box struct {
	Pos  Coordinate
	Dims Dimensions
}

// Volume returns w*d*h.
func volume(dims Dimensions) int {
	return dims.W * dims.D * dims.H
}

// Volume returns the box's volume.
func (b Box) Volume() int {
	return volume(b.Dims)
}

// Max returns the box's exclusive upper corner (x+w, y+d, z+h).
func (b Box) Max() Coordinate {
	return Coordinate{X: b.Pos.X + b.Dims.W, Y: b.Pos.Y + b.Dims.D, Z: b.Pos.Z + b.Dims.H}
}

func validateDimensions(dims Dimensions) error {
	if dims.W <= 0 || dims.D <= 0 || dims.H <= 0 {
		return newErr(CodeInvalidArgument, fmt.Sprintf("dimensions must be positive, got %+v", dims))
	}
	return nil
}

func validateCoordinate(pos Coordinate) error {
	if pos.X < 0 || pos.Y < 0 || pos.Z < 0 {
		return newErr(CodeInvalidArgument, fmt.Sprintf("coordinate must be non-negative, got %+v", pos))
	}
	return nil
}

// contains reports whether box lies fully inside container, both half-open.
func contains(container, box Box) bool {
	cMax := container.Max()
	bMax := box.Max()
	return box.Pos.X >= container.Pos.X && box.Pos.Y >= container.Pos.Y && box.Pos.Z >= container.Pos.Z &&
		bMax.X <= cMax.X && bMax.Y <= cMax.Y && bMax.Z <= cMax.Z
}

// overlaps reports strict half-open overlap between a and b.
func overlaps(a, b Box) bool {
	aMax := a.Max()
	bMax := b.Max()
	if a.Pos.X >= bMax.X || b.Pos.X >= aMax.X {
		return false
	}
	if a.Pos.Y >= bMax.Y || b.Pos.Y >= aMax.Y {
		return false
	}
	if a.Pos.Z >= bMax.Z || b.Pos.Z >= aMax.Z {
		return false
	}
	return true
}

// manhattan returns the L1 distance between two coordinates.
func manhattan(a, b Coordinate) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y) + absInt(a.Z-b.Z)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
