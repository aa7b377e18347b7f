// Package geom provides the 8-bit point, size and rectangle algebra used to
// address small TFT panels.
//
// All coordinates are uint8: the panels this module drives are at most
// 162 pixels on a side. Arithmetic wraps silently; insetting a rectangle by
// more than half its size, for instance, yields a wrapped size. Callers that
// can produce such values must check them first.
package geom

import (
	"fmt"
	"image"
)

// Point is a pixel coordinate.
type Point struct {
	X, Y uint8
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y uint8) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.DX, Y: p.Y + v.DY}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a width and height in pixels.
type Size struct {
	W, H uint8
}

// Sz is shorthand for Size{w, h}.
func Sz(w, h uint8) Size {
	return Size{W: w, H: h}
}

// Area returns W*H without overflowing.
func (s Size) Area() int {
	return int(s.W) * int(s.H)
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// Vector is a displacement.
type Vector struct {
	DX, DY uint8
}

// Vec is shorthand for Vector{dx, dy}.
func Vec(dx, dy uint8) Vector {
	return Vector{DX: dx, DY: dy}
}

// EdgeInsets specifies the amount to inset each edge of a rectangle.
type EdgeInsets struct {
	Top, Left, Bottom, Right uint8
}

// Rect is an axis-aligned rectangle. A rectangle with a zero width or height
// is empty; the zero Rect doubles as the null rectangle.
type Rect struct {
	Origin Point
	Size   Size
}

// R is shorthand for Rect{Pt(x, y), Sz(w, h)}.
func R(x, y, w, h uint8) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// FromImage converts r to a Rect. Coordinates are truncated to 8 bits.
func FromImage(r image.Rectangle) Rect {
	r = r.Canon()
	return R(uint8(r.Min.X), uint8(r.Min.Y), uint8(r.Dx()), uint8(r.Dy()))
}

// Image returns the image.Rectangle covering the same pixels.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.MinX()), int(r.MinY()), int(r.MinX())+int(r.Size.W), int(r.MinY())+int(r.Size.H))
}

func (r Rect) String() string {
	return fmt.Sprintf("%v-%v", r.Origin, r.Size)
}

// MinX returns the leftmost x value of r.
func (r Rect) MinX() uint8 {
	return min(r.Origin.X, r.Origin.X+r.Size.W)
}

// MidX returns the horizontal midpoint of r.
func (r Rect) MidX() uint8 {
	return r.Origin.X + r.Size.W/2
}

// MaxX returns the x value one past the rightmost column of r.
func (r Rect) MaxX() uint8 {
	return max(r.Origin.X, r.Origin.X+r.Size.W)
}

// MinY returns the topmost y value of r.
func (r Rect) MinY() uint8 {
	return min(r.Origin.Y, r.Origin.Y+r.Size.H)
}

// MidY returns the vertical midpoint of r.
func (r Rect) MidY() uint8 {
	return r.Origin.Y + r.Size.H/2
}

// MaxY returns the y value one past the bottom row of r.
func (r Rect) MaxY() uint8 {
	return max(r.Origin.Y, r.Origin.Y+r.Size.H)
}

// Empty reports whether r has a zero width or height.
func (r Rect) Empty() bool {
	return r.Size.W == 0 || r.Size.H == 0
}

// Inset moves the origin of r by (dx, dy) and shrinks it by (2*dx, 2*dy).
func (r Rect) Inset(dx, dy uint8) Rect {
	r.Origin.X += dx
	r.Origin.Y += dy
	r.Size.W -= dx + dx
	r.Size.H -= dy + dy
	return r
}

// InsetEdges shrinks r by the given amount on each edge.
func (r Rect) InsetEdges(in EdgeInsets) Rect {
	r.Origin.X += in.Left
	r.Origin.Y += in.Top
	r.Size.W -= in.Left + in.Right
	r.Size.H -= in.Top + in.Bottom
	return r
}

// Add translates r by v.
func (r Rect) Add(v Vector) Rect {
	r.Origin = r.Origin.Add(v)
	return r
}

// Sub translates r by -v.
func (r Rect) Sub(v Vector) Rect {
	r.Origin.X -= v.DX
	r.Origin.Y -= v.DY
	return r
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	x0, y0 := min(r.MinX(), s.MinX()), min(r.MinY(), s.MinY())
	x1, y1 := max(r.MaxX(), s.MaxX()), max(r.MaxY(), s.MaxY())
	return R(x0, y0, x1-x0, y1-y0)
}

// Intersect returns the largest rectangle contained by both r and s. If the
// two do not overlap the result is empty.
func (r Rect) Intersect(s Rect) Rect {
	x0, y0 := max(r.MinX(), s.MinX()), max(r.MinY(), s.MinY())
	x1, y1 := min(r.MaxX(), s.MaxX()), min(r.MaxY(), s.MaxY())
	if x0 > x1 || y0 > y1 {
		return Rect{}
	}
	return R(x0, y0, x1-x0, y1-y0)
}

// Intersects reports whether r and s share at least one pixel.
func (r Rect) Intersects(s Rect) bool {
	return !r.Intersect(s).Empty()
}

// ContainsPoint reports whether the pixel at p lies inside r.
func (r Rect) ContainsPoint(p Point) bool {
	return r.MinX() <= p.X && p.X < r.MaxX() &&
		r.MinY() <= p.Y && p.Y < r.MaxY()
}

// ContainsRect reports whether s lies entirely inside r, that is whether the
// union of r and s is r.
func (r Rect) ContainsRect(s Rect) bool {
	return r.MinX() <= s.MinX() && s.MaxX() <= r.MaxX() &&
		r.MinY() <= s.MinY() && s.MaxY() <= r.MaxY()
}
