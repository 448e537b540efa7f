package pose

import (
	"github.com/chewxy/math32"
)

// Point is a 2D pixel coordinate.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// InvalidPoint is the sentinel for a joint with no confident detection.
var InvalidPoint = Point{-1, -1}

// Valid returns true if the point is not the invalid sentinel.
// The keypoint source uses non-positive coordinates to mean "unknown".
func (p Point) Valid() bool {
	return p.X > 0 && p.Y > 0
}

func (p Point) Distance(b Point) float32 {
	dx := p.X - b.X
	dy := p.Y - b.Y
	return math32.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned bounding box in pixel space.
type Rect struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// RectFromEdges builds a Rect from corner coordinates (x1,y1,x2,y2),
// which is how the keypoint source describes boxes.
func RectFromEdges(x1, y1, x2, y2 float32) Rect {
	return Rect{
		X:      x1,
		Y:      y1,
		Width:  x2 - x1,
		Height: y2 - y1,
	}
}

func (r Rect) X2() float32 {
	return r.X + r.Width
}

func (r Rect) Y2() float32 {
	return r.Y + r.Height
}

func (r Rect) Area() float32 {
	return max(0, r.Width) * max(0, r.Height)
}

func (r Rect) Intersection(b Rect) Rect {
	x1 := max(r.X, b.X)
	y1 := max(r.Y, b.Y)
	x2 := min(r.X2(), b.X2())
	y2 := min(r.Y2(), b.Y2())
	return Rect{
		X:      x1,
		Y:      y1,
		Width:  max(0, x2-x1),
		Height: max(0, y2-y1),
	}
}

func (r Rect) Union(b Rect) Rect {
	x1 := min(r.X, b.X)
	y1 := min(r.Y, b.Y)
	x2 := max(r.X2(), b.X2())
	y2 := max(r.Y2(), b.Y2())
	return Rect{
		X:      x1,
		Y:      y1,
		Width:  x2 - x1,
		Height: y2 - y1,
	}
}

// Intersection over Union. Degenerate boxes produce 0, never NaN.
func (r Rect) IOU(b Rect) float32 {
	intersection := r.Intersection(b).Area()
	union := r.Area() + b.Area() - intersection
	if union <= 0 {
		return 0
	}
	return intersection / union
}

func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}
