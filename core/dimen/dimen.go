// Package dimen implements the geometry of shaped text.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"fmt"
	"math"

	"golang.org/x/image/math/fixed"
)

// Shaped text is measured in CSS pixels, using float32 values. Font units
// and 26.6 fixed point values coming from font tables or shaping engines
// are converted at the boundary.

// Point is a point on a plane, or a 2-dimensional offset.
type Point struct {
	X, Y float32
}

// Origin is the point (0,0).
var Origin = Point{}

// Shift a point by a vector.
func (p Point) Shift(vector Point) Point {
	return Point{p.X + vector.X, p.Y + vector.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}

// Rect is a rectangle given by its top left corner and its extent.
// A rectangle with non-positive width or height is considered empty.
type Rect struct {
	X, Y float32
	W, H float32
}

// MaxX returns the right edge of r.
func (r Rect) MaxX() float32 {
	return r.X + r.W
}

// MaxY returns the bottom edge of r.
func (r Rect) MaxY() float32 {
	return r.Y + r.H
}

// IsEmpty is true for rectangles without area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Translated returns r moved by (dx,dy).
func (r Rect) Translated(dx, dy float32) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Unite returns the smallest rectangle containing r and other.
// Empty rectangles do not contribute to the union.
func (r Rect) Unite(other Rect) Rect {
	if other.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return other
	}
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	maxx := max(r.MaxX(), other.MaxX())
	maxy := max(r.MaxY(), other.MaxY())
	return Rect{X: x, Y: y, W: maxx - x, H: maxy - y}
}

// Center returns the center point of r.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%.2f,%.2f %.2fx%.2f]", r.X, r.Y, r.W, r.H)
}

// FromFixed converts a 26.6 fixed point value to float32.
func FromFixed(x fixed.Int26_6) float32 {
	return float32(x) / 64
}

// ToFixed converts a float32 to the nearest 26.6 fixed point value.
func ToFixed(x float32) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(float64(x) * 64))
}

// FromRectangle converts a 26.6 fixed point rectangle (as returned by
// glyph bounds queries) to a Rect.
func FromRectangle(r fixed.Rectangle26_6) Rect {
	return Rect{
		X: FromFixed(r.Min.X),
		Y: FromFixed(r.Min.Y),
		W: FromFixed(r.Max.X - r.Min.X),
		H: FromFixed(r.Max.Y - r.Min.Y),
	}
}
