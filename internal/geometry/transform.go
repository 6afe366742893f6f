package geometry

import "math"

// WorldPosition maps a local offset into world space by rotating it about the
// component origin and translating: world = position + R(rotationDeg)·local.
func WorldPosition(position Vec2, rotationDeg float64, local Vec2) Vec2 {
	return position.Add(local.Rotate(rotationDeg * math.Pi / 180))
}

// WorldDirection rotates a local direction vector into world space.
func WorldDirection(rotationDeg float64, local Vec2) Vec2 {
	return local.Rotate(rotationDeg * math.Pi / 180)
}

// PathLength sums the Euclidean distances between consecutive points.
func PathLength(points []Vec2) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i].Sub(points[i-1]).Length()
	}
	return total
}
