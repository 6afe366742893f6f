package geometry

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestReflect(t *testing.T) {
	// Ray going down-right off a horizontal surface (normal up).
	v := Vec2{1, 1}
	n := Vec2{0, 1}

	r := v.Reflect(n)

	if !almostEqual(r.X, 1) || !almostEqual(r.Y, -1) {
		t.Errorf("expected (1,-1), got (%f,%f)", r.X, r.Y)
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	v := Vec2{1, 0}
	r := v.Rotate(math.Pi / 2)

	if !almostEqual(r.X, 0) || !almostEqual(r.Y, 1) {
		t.Errorf("expected (0,1), got (%f,%f)", r.X, r.Y)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	v := Vec2{}.Normalize()
	if v.X != 0 || v.Y != 0 {
		t.Errorf("expected zero vector, got (%f,%f)", v.X, v.Y)
	}
	if !(Vec2{}).IsZero() {
		t.Error("zero vector should report IsZero")
	}
}

func TestWorldPosition(t *testing.T) {
	// Port at local (30,0) on a component rotated 90 degrees ends up above it.
	pos := WorldPosition(Vec2{100, 200}, 90, Vec2{30, 0})

	if !almostEqual(pos.X, 100) || !almostEqual(pos.Y, 230) {
		t.Errorf("expected (100,230), got (%f,%f)", pos.X, pos.Y)
	}
}

func TestWorldPositionNoRotation(t *testing.T) {
	pos := WorldPosition(Vec2{10, 20}, 0, Vec2{-30, 0})

	if !almostEqual(pos.X, -20) || !almostEqual(pos.Y, 20) {
		t.Errorf("expected (-20,20), got (%f,%f)", pos.X, pos.Y)
	}
}

func TestPathLength(t *testing.T) {
	length := PathLength([]Vec2{{0, 0}, {3, 0}, {3, 4}})

	if !almostEqual(length, 7) {
		t.Errorf("expected path length 7, got %f", length)
	}
}

func TestPathLengthDegenerate(t *testing.T) {
	if PathLength(nil) != 0 {
		t.Error("empty path should have zero length")
	}
	if PathLength([]Vec2{{1, 1}}) != 0 {
		t.Error("single point path should have zero length")
	}
}
