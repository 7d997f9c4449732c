package raycast

// WallSlice is one ray's result for the current frame.
type WallSlice struct {
	Ray     int     // Screen column index
	Angle   float64 // Absolute ray angle
	ScreenX float64 // Left edge of the column in pixels

	Hit        bool // False when nothing was hit within MaxDistance
	HitX, HitY float64
	Row, Col   int // Hit cell, clamped into the grid

	Distance float64 // Raw distance along the ray
	Depth    float64 // Perpendicular distance
	Shade    uint8
	Height   float64
	Top      float64
}
