package viewport

// Rect is a screen rectangle. X and Y are the top-left cell; the rectangle
// covers W columns and H rows.
type Rect struct {
	X, Y, W, H int
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle covers no cells. An empty rectangle
// stands for an element that is not attached yet or was already torn down.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	if r.Empty() {
		return false
	}
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Size is a measured width and height.
type Size struct {
	W, H int
}

// Metrics tunes overlay placement.
type Metrics struct {
	Gap      int // rows between the trigger's bottom edge and the overlay
	MinWidth int // lower bound for the overlay width
	Margin   int // cells kept free at the right screen edge
}

// DefaultMetrics places the overlay directly under its trigger.
var DefaultMetrics = Metrics{Gap: 0, MinWidth: 28, Margin: 1}

// Placement is where an overlay is drawn.
type Placement struct {
	X, Y     int
	MinWidth int
}

// Rect returns the rectangle the overlay covers at this placement.
func (p Placement) Rect(s Size) Rect {
	return Rect{X: p.X, Y: p.Y, W: s.W, H: s.H}
}

// MinOverlayWidth returns the width an overlay anchored to anchor must at
// least have.
func MinOverlayWidth(anchor Rect, m Metrics) int {
	return max(m.MinWidth, anchor.W)
}

// Place positions an overlay of the given size under anchor. The overlay is
// shifted left by exactly the amount it would otherwise overflow the right
// screen edge, but never past column 0. It returns false when either element
// is missing.
func Place(anchor Rect, overlay Size, screenWidth int, m Metrics) (Placement, bool) {
	if anchor.Empty() || overlay.W <= 0 || overlay.H <= 0 {
		return Placement{}, false
	}
	p := Placement{
		X:        anchor.X,
		Y:        anchor.Bottom() + m.Gap,
		MinWidth: MinOverlayWidth(anchor, m),
	}
	overflow := screenWidth - (p.X + overlay.W + m.Margin)
	if overflow < 0 {
		p.X = max(p.X+overflow, 0)
	}
	return p, true
}
