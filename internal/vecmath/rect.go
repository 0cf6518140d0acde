package vecmath

// Rect is an axis-aligned rectangle given by its minimum and maximum corners.
type Rect struct {
	Min Vector2 `yaml:"min" json:"min"`
	Max Vector2 `yaml:"max" json:"max"`
}

// NewRect builds a rectangle from axis ranges.
func NewRect(xMin, xMax, yMin, yMax float64) Rect {
	return Rect{Min: Vector2{xMin, yMin}, Max: Vector2{xMax, yMax}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
