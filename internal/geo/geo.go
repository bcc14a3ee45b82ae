// Package geo provides axis-aligned bounding box containment predicates
// used to validate occurrence records against raster and tile extents.
package geo

import (
	"github.com/tlarcher/geolife-go/internal/errors"
)

// Point is a 2D coordinate, longitude first.
type Point struct {
	X float64
	Y float64
}

// Box is an axis-aligned bounding box. Bounds are inclusive on all sides.
type Box struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// NewBox validates the bounds and returns a Box. Degenerate boxes with
// zero width or height are allowed, inverted bounds are not.
func NewBox(minX, minY, maxX, maxY float64) (Box, error) {
	if minX > maxX || minY > maxY {
		return Box{}, errors.Newf("invalid box bounds: min (%g, %g) exceeds max (%g, %g)", minX, minY, maxX, maxY).
			Component("geo").
			Category(errors.CategoryValidation).
			Build()
	}
	return Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, nil
}

// Valid reports whether the box has non-inverted bounds.
func (b Box) Valid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

// ContainsPoint reports whether p lies within the box. Points on the
// boundary are contained.
func (b Box) ContainsPoint(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX &&
		p.Y >= b.MinY && p.Y <= b.MaxY
}

// Contains reports whether inner is fully enclosed in b. Boxes sharing an
// edge with b are contained. Equivalent to checking every corner of inner
// against b's bounds.
func (b Box) Contains(inner Box) bool {
	return inner.MinX >= b.MinX && inner.MinX <= b.MaxX &&
		inner.MaxX >= b.MinX && inner.MaxX <= b.MaxX &&
		inner.MinY >= b.MinY && inner.MinY <= b.MaxY &&
		inner.MaxY >= b.MinY && inner.MaxY <= b.MaxY
}

// Corners returns the four corners of the box in counter-clockwise order
// starting from (MinX, MinY).
func (b Box) Corners() [4]Point {
	return [4]Point{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}
